package handlers

import (
	"net/http"
	"strings"

	"tcu-system/internal/database"
	"tcu-system/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

func ShowLogin(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"error": ""})
}

type loginForm struct {
	Email    string `form:"email"`
	Password string `form:"password"`
}

// Login checks the credentials and binds the session to the user. Unknown
// email and wrong password answer with the same message on purpose.
func Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Datos inválidos"})
		return
	}
	form.Email = strings.TrimSpace(form.Email)

	var user models.User
	if err := database.DB.Where("email = ?", form.Email).First(&user).Error; err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Correo o contraseña incorrectos."})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(form.Password)); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{"error": "Correo o contraseña incorrectos."})
		return
	}

	sess := sessions.Default(c)
	sess.Set("user_id", user.ID)
	_ = sess.Save()

	c.Redirect(http.StatusFound, "/home")
}

// Logout clears the whole session. Idempotent: logging out twice is fine.
func Logout(c *gin.Context) {
	sess := sessions.Default(c)
	sess.Clear()
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/login")
}
