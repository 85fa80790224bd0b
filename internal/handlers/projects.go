package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"tcu-system/internal/database"
	"tcu-system/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

func ListProjects(c *gin.Context) {
	var projects []models.Project
	if err := database.DB.Preload("Professor").Order("name asc").Find(&projects).Error; err != nil {
		c.String(http.StatusInternalServerError, "Error al cargar los proyectos")
		return
	}

	// professors selectable as coordinators in the create/edit forms
	var professors []models.User
	database.DB.Joins("JOIN roles ON roles.id = users.role_id").
		Where("roles.name = ?", "Profesor").
		Order("last_name asc, first_name asc").
		Find(&professors)

	sess := sessions.Default(c)
	flashes := sess.Flashes()
	_ = sess.Save()

	render(c, http.StatusOK, "projects.html", gin.H{
		"Projects":   projects,
		"Professors": professors,
		"Flashes":    flashes,
	})
}

// parseProjectForm validates code/name and the optional professor
// assignment shared by create and edit.
func parseProjectForm(c *gin.Context) (code, name string, professorID *uint, errMsg string) {
	code = strings.ToUpper(strings.TrimSpace(c.PostForm("code")))
	name = strings.TrimSpace(c.PostForm("name"))

	if code == "" || name == "" {
		return "", "", nil, "Código y nombre son campos obligatorios"
	}
	if len(code) < 2 {
		return "", "", nil, "El código debe tener al menos 2 caracteres"
	}

	if idStr := c.PostForm("professorId"); idStr != "" {
		id, err := strconv.Atoi(idStr)
		if err != nil || id <= 0 {
			return "", "", nil, "Profesor no encontrado"
		}
		var professor models.User
		if err := database.DB.Preload("Role").First(&professor, id).Error; err != nil {
			return "", "", nil, "Profesor no encontrado"
		}
		kind, err := models.ParseRoleKind(professor.Role.Name)
		if err != nil || kind != models.RoleProfessor {
			return "", "", nil, "Solo se pueden asignar profesores a los proyectos"
		}
		professorID = &professor.ID
	}

	return code, name, professorID, ""
}

func projectsRedirect(c *gin.Context, msg string) {
	sess := sessions.Default(c)
	sess.AddFlash(msg)
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/projects")
}

func CreateProject(c *gin.Context) {
	code, name, professorID, errMsg := parseProjectForm(c)
	if errMsg != "" {
		projectsRedirect(c, errMsg)
		return
	}

	// uniqueness checked up front so the message can name the field
	var count int64
	database.DB.Model(&models.Project{}).Where("code = ?", code).Count(&count)
	if count > 0 {
		projectsRedirect(c, fmt.Sprintf("El código %s ya está registrado", code))
		return
	}
	database.DB.Model(&models.Project{}).Where("name = ?", name).Count(&count)
	if count > 0 {
		projectsRedirect(c, fmt.Sprintf("El nombre %s ya está registrado", name))
		return
	}

	project := models.Project{Code: code, Name: name, ProfessorID: professorID}
	if err := database.DB.Create(&project).Error; err != nil {
		projectsRedirect(c, "Error al crear el proyecto")
		return
	}

	projectsRedirect(c, fmt.Sprintf("Proyecto %s creado exitosamente", name))
}

func EditProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusNotFound, "Proyecto no encontrado")
		return
	}
	var project models.Project
	if err := database.DB.First(&project, id).Error; err != nil {
		c.String(http.StatusNotFound, "Proyecto no encontrado")
		return
	}

	code, name, professorID, errMsg := parseProjectForm(c)
	if errMsg != "" {
		projectsRedirect(c, errMsg)
		return
	}

	var count int64
	database.DB.Model(&models.Project{}).Where("code = ? AND id <> ?", code, project.ID).Count(&count)
	if count > 0 {
		projectsRedirect(c, fmt.Sprintf("El código %s ya está registrado", code))
		return
	}
	database.DB.Model(&models.Project{}).Where("name = ? AND id <> ?", name, project.ID).Count(&count)
	if count > 0 {
		projectsRedirect(c, fmt.Sprintf("El nombre %s ya está registrado", name))
		return
	}

	project.Code = code
	project.Name = name
	project.ProfessorID = professorID
	if err := database.DB.Save(&project).Error; err != nil {
		projectsRedirect(c, "Error al actualizar el proyecto")
		return
	}

	projectsRedirect(c, fmt.Sprintf("Proyecto %s actualizado exitosamente", name))
}

// DeleteProject answers a structured payload. The referential guard runs
// before the delete: assigned students or existing requests block it.
func DeleteProject(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Proyecto no encontrado"})
		return
	}
	var project models.Project
	if err := database.DB.First(&project, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Proyecto no encontrado"})
		return
	}

	switch err := database.CanDeleteProject(project.ID); err {
	case nil:
	case database.ErrHasAssignedUsers:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No se puede eliminar el proyecto porque tiene estudiantes asignados",
		})
		return
	case database.ErrHasRequests:
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "No se puede eliminar el proyecto porque tiene solicitudes asociadas",
		})
		return
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}

	if err := database.DB.Delete(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Error al eliminar"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Proyecto %s eliminado exitosamente", project.Name),
	})
}
