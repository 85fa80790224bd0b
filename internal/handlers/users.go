package handlers

import (
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"tcu-system/internal/database"
	"tcu-system/internal/middleware"
	"tcu-system/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

func ListUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Preload("Role").Preload("Project").
		Order("last_name asc, first_name asc").
		Find(&users).Error; err != nil {
		c.String(http.StatusInternalServerError, "Error al cargar los usuarios")
		return
	}

	var roles []models.Role
	database.DB.Order("id asc").Find(&roles)
	var projects []models.Project
	database.DB.Order("name asc").Find(&projects)

	sess := sessions.Default(c)
	flashes := sess.Flashes()
	_ = sess.Save()

	render(c, http.StatusOK, "users.html", gin.H{
		"Users":    users,
		"Roles":    roles,
		"Projects": projects,
		"Flashes":  flashes,
	})
}

func usersRedirect(c *gin.Context, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg)
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/users")
}

type userForm struct {
	FirstName string
	LastName  string
	Email     string
	Role      models.Role
	RoleKind  models.RoleKind
	ProjectID *uint
}

// parseUserForm validates the fields shared by create and edit. A project is
// only kept when the chosen role is student; otherwise it is dropped with a
// warning, matching the data model (project assignment is student-only).
func parseUserForm(c *gin.Context) (userForm, string) {
	var form userForm
	form.FirstName = strings.TrimSpace(c.PostForm("firstName"))
	form.LastName = strings.TrimSpace(c.PostForm("lastName"))
	form.Email = strings.ToLower(strings.TrimSpace(c.PostForm("email")))
	roleIDStr := c.PostForm("roleId")

	if form.FirstName == "" || form.LastName == "" || form.Email == "" || roleIDStr == "" {
		return form, "Todos los campos obligatorios deben ser completados"
	}
	if !emailPattern.MatchString(form.Email) {
		return form, "El formato del email no es válido"
	}

	roleID, err := strconv.Atoi(roleIDStr)
	if err != nil || roleID <= 0 {
		return form, "Rol no encontrado"
	}
	if err := database.DB.First(&form.Role, roleID).Error; err != nil {
		return form, "Rol no encontrado"
	}
	form.RoleKind, err = models.ParseRoleKind(form.Role.Name)
	if err != nil {
		return form, "Rol no encontrado"
	}

	if projectIDStr := c.PostForm("projectId"); projectIDStr != "" {
		if form.RoleKind != models.RoleStudent {
			sess := sessions.Default(c)
			sess.AddFlash("Solo los estudiantes pueden tener proyectos asignados")
			_ = sess.Save()
		} else {
			id, err := strconv.Atoi(projectIDStr)
			if err != nil || id <= 0 {
				return form, "Proyecto no encontrado"
			}
			var project models.Project
			if err := database.DB.First(&project, id).Error; err != nil {
				return form, "Proyecto no encontrado"
			}
			form.ProjectID = &project.ID
		}
	}

	return form, ""
}

func validatePassword(password, confirm string) string {
	if password != confirm {
		return "Las contraseñas no coinciden"
	}
	if len(password) < 6 {
		return "La contraseña debe tener al menos 6 caracteres"
	}
	return ""
}

func CreateUser(c *gin.Context) {
	form, errMsg := parseUserForm(c)
	if errMsg != "" {
		usersRedirect(c, errMsg)
		return
	}

	password := c.PostForm("password")
	if password == "" {
		usersRedirect(c, "Todos los campos obligatorios deben ser completados")
		return
	}
	if msg := validatePassword(password, c.PostForm("confirmPassword")); msg != "" {
		usersRedirect(c, msg)
		return
	}

	var count int64
	database.DB.Model(&models.User{}).Where("email = ?", form.Email).Count(&count)
	if count > 0 {
		usersRedirect(c, "El email ya está registrado")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		usersRedirect(c, "Error al crear usuario")
		return
	}

	user := models.User{
		RoleID:       form.Role.ID,
		FirstName:    form.FirstName,
		LastName:     form.LastName,
		Email:        form.Email,
		PasswordHash: string(hash),
		ProjectID:    form.ProjectID,
	}
	if err := database.DB.Create(&user).Error; err != nil {
		usersRedirect(c, "Error al crear usuario")
		return
	}

	usersRedirect(c, fmt.Sprintf("Usuario %s %s creado exitosamente", form.FirstName, form.LastName))
}

func EditUser(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusNotFound, "Usuario no encontrado")
		return
	}
	var user models.User
	if err := database.DB.Preload("Role").First(&user, id).Error; err != nil {
		c.String(http.StatusNotFound, "Usuario no encontrado")
		return
	}

	// admin accounts are managed out of band, never through this form
	if kind, err := models.ParseRoleKind(user.Role.Name); err == nil && kind == models.RoleAdmin {
		usersRedirect(c, "No se pueden editar los administradores desde esta vista")
		return
	}

	form, errMsg := parseUserForm(c)
	if errMsg != "" {
		usersRedirect(c, errMsg)
		return
	}

	var count int64
	database.DB.Model(&models.User{}).Where("email = ? AND id <> ?", form.Email, user.ID).Count(&count)
	if count > 0 {
		usersRedirect(c, "El email ya está registrado por otro usuario")
		return
	}

	changes := map[string]interface{}{
		"first_name": form.FirstName,
		"last_name":  form.LastName,
		"email":      form.Email,
		"role_id":    form.Role.ID,
		"project_id": form.ProjectID,
	}

	if password := c.PostForm("password"); strings.TrimSpace(password) != "" {
		if msg := validatePassword(password, c.PostForm("confirmPassword")); msg != "" {
			usersRedirect(c, msg)
			return
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			usersRedirect(c, "Error al actualizar usuario")
			return
		}
		changes["password_hash"] = string(hash)
	}

	if err := database.DB.Model(&models.User{}).Where("id = ?", user.ID).
		Updates(changes).Error; err != nil {
		usersRedirect(c, "Error al actualizar usuario")
		return
	}

	usersRedirect(c, fmt.Sprintf("Usuario %s %s actualizado exitosamente", form.FirstName, form.LastName))
}

// DeleteUser answers a structured payload. The referential guard runs before
// the delete: admin accounts, the actor's own account and students with
// requests on record are all protected.
func DeleteUser(c *gin.Context) {
	actor, _ := middleware.CurrentUser(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Usuario no encontrado"})
		return
	}
	var user models.User
	if err := database.DB.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Usuario no encontrado"})
		return
	}

	switch err := database.CanDeleteUser(actor.ID, user.ID); err {
	case nil:
	case database.ErrIsAdmin:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No se puede eliminar a un administrador",
		})
		return
	case database.ErrIsSelf:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No puedes eliminar tu propia cuenta",
		})
		return
	case database.ErrHasRequests:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No se puede eliminar el usuario porque tiene solicitudes asociadas",
		})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := database.DB.Delete(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error al eliminar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Usuario %s eliminado exitosamente", user.FullName()),
	})
}
