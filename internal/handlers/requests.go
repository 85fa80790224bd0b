package handlers

import (
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"tcu-system/internal/database"
	"tcu-system/internal/middleware"
	"tcu-system/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

var (
	ErrNoProjectAssigned = errors.New("student has no project assigned")
	ErrInvalidHours      = errors.New("hours must be an integer between 1 and 100")
	ErrInvalidDate       = errors.New("date must be YYYY-MM-DD")
	ErrFutureDate        = errors.New("date cannot be in the future")
)

const (
	maxUploadSize = 10 << 20 // 10 MiB per file
	dateLayout    = "2006-01-02"
)

var allowedExtensions = map[string]struct{}{
	".pdf": {}, ".doc": {}, ".docx": {},
	".jpg": {}, ".jpeg": {}, ".png": {}, ".txt": {},
}

// scopedRequests builds the request query visible to the user: students see
// their own, professors the ones on projects they coordinate (none if they
// coordinate no project), admins everything.
func scopedRequests(user models.User, kind models.RoleKind) *gorm.DB {
	q := database.DB.Model(&models.Request{})
	switch kind {
	case models.RoleStudent:
		return q.Where("student_id = ?", user.ID)
	case models.RoleProfessor:
		owned := database.DB.Model(&models.Project{}).Select("id").Where("professor_id = ?", user.ID)
		return q.Where("project_id IN (?)", owned)
	default:
		return q
	}
}

// canReviewRequest: admins review anything, professors only requests on
// projects they coordinate, students nothing.
func canReviewRequest(user models.User, kind models.RoleKind, req models.Request) bool {
	switch kind {
	case models.RoleAdmin:
		return true
	case models.RoleProfessor:
		return req.Project != nil && req.Project.ProfessorID != nil && *req.Project.ProfessorID == user.ID
	default:
		return false
	}
}

// canViewRequest: students only see their own; staff (professor or admin)
// may open any request's detail.
func canViewRequest(user models.User, kind models.RoleKind, req models.Request) bool {
	switch kind {
	case models.RoleStudent:
		return req.StudentID != nil && *req.StudentID == user.ID
	case models.RoleProfessor, models.RoleAdmin:
		return true
	default:
		return false
	}
}

func parseRequestForm(hoursStr, description, dateStr string) (int, time.Time, error) {
	hours, err := strconv.Atoi(strings.TrimSpace(hoursStr))
	if err != nil || hours < 1 || hours > 100 {
		return 0, time.Time{}, ErrInvalidHours
	}

	if strings.TrimSpace(description) == "" {
		return 0, time.Time{}, errors.New("description is required")
	}

	date, err := time.ParseInLocation(dateLayout, strings.TrimSpace(dateStr), time.Local)
	if err != nil {
		return 0, time.Time{}, ErrInvalidDate
	}
	// compare calendar dates, not instants: today's date is valid in every
	// timezone for the whole local day
	y, m, d := time.Now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	if date.After(today) {
		return 0, time.Time{}, ErrFutureDate
	}

	return hours, date, nil
}

// acceptUpload returns the warning to show when the file must be skipped.
func acceptUpload(h *multipart.FileHeader) string {
	if h.Size > maxUploadSize {
		return fmt.Sprintf("El archivo %s excede el tamaño máximo de 10MB", h.Filename)
	}
	if _, ok := allowedExtensions[strings.ToLower(filepath.Ext(h.Filename))]; !ok {
		return fmt.Sprintf("El archivo %s tiene un tipo no permitido", h.Filename)
	}
	return ""
}

func ShowCreateRequest(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	if user.ProjectID == nil {
		sess := sessions.Default(c)
		sess.AddFlash("No tienes un proyecto asignado. Contacta al administrador.")
		_ = sess.Save()
		c.Redirect(http.StatusFound, "/home")
		return
	}

	render(c, http.StatusOK, "create_request.html", gin.H{
		"Today":   time.Now().Format(dateLayout),
		"Project": user.Project,
		"error":   "",
	})
}

// CreateRequest registers a new hours request for the student's assigned
// project. Attachments that fail the size or extension check are skipped
// with a warning; they never fail the request itself.
func CreateRequest(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	if user.ProjectID == nil {
		sess := sessions.Default(c)
		sess.AddFlash("No tienes un proyecto asignado. Contacta al administrador.")
		_ = sess.Save()
		c.Redirect(http.StatusFound, "/home")
		return
	}

	hours, date, err := parseRequestForm(
		c.PostForm("hoursRequested"),
		c.PostForm("description"),
		c.PostForm("date"),
	)
	if err != nil {
		renderCreateRequestError(c, user.Project, formErrorMessage(err))
		return
	}

	var pending models.Status
	if err := database.DB.Where("name = ?", models.StatusPending).First(&pending).Error; err != nil {
		c.String(http.StatusInternalServerError, "Error al crear la solicitud")
		return
	}

	req := models.Request{
		StudentID:        &user.ID,
		ProjectID:        user.ProjectID,
		StatusID:         &pending.ID,
		HoursRequested:   hours,
		Description:      strings.TrimSpace(c.PostForm("description")),
		Date:             date,
		ProfessorComment: "",
		RevisionDate:     nil,
	}
	if err := database.DB.Create(&req).Error; err != nil {
		renderCreateRequestError(c, user.Project, "Error al crear la solicitud")
		return
	}

	sess := sessions.Default(c)

	// attachments are best-effort: the request stays even if every file
	// gets skipped
	if form, err := c.MultipartForm(); err == nil && form != nil {
		for _, header := range form.File["files"] {
			if warning := acceptUpload(header); warning != "" {
				sess.AddFlash(warning)
				continue
			}

			src, err := header.Open()
			if err != nil {
				sess.AddFlash(fmt.Sprintf("No se pudo leer el archivo %s", header.Filename))
				continue
			}
			stored, err := Uploads.Save(header.Filename, src)
			src.Close()
			if err != nil {
				sess.AddFlash(fmt.Sprintf("No se pudo guardar el archivo %s", header.Filename))
				continue
			}

			file := models.File{
				RequestID:  req.ID,
				Name:       header.Filename,
				StoredName: stored,
			}
			if err := database.DB.Create(&file).Error; err != nil {
				sess.AddFlash(fmt.Sprintf("No se pudo registrar el archivo %s", header.Filename))
			}
		}
	}

	sess.AddFlash("Solicitud creada exitosamente")
	_ = sess.Save()
	c.Redirect(http.StatusFound, "/home")
}

func formErrorMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidHours):
		return "Las horas deben ser un número entre 1 y 100"
	case errors.Is(err, ErrInvalidDate):
		return "Formato de fecha inválido. Use YYYY-MM-DD"
	case errors.Is(err, ErrFutureDate):
		return "La fecha no puede ser futura"
	default:
		return "Todos los campos obligatorios deben ser completados"
	}
}

func renderCreateRequestError(c *gin.Context, project *models.Project, msg string) {
	render(c, http.StatusBadRequest, "create_request.html", gin.H{
		"Today":   time.Now().Format(dateLayout),
		"Project": project,
		"error":   msg,
	})
}

func ListRequests(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	kind, _ := middleware.CurrentRole(c)

	var requests []models.Request
	if err := scopedRequests(user, kind).
		Preload("Status").Preload("Project").Preload("Student").
		Order("date desc").
		Find(&requests).Error; err != nil {
		c.String(http.StatusInternalServerError, "Error al cargar las solicitudes")
		return
	}

	render(c, http.StatusOK, "requests.html", gin.H{
		"Requests": requests,
	})
}

func loadRequest(c *gin.Context) (models.Request, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		c.String(http.StatusNotFound, "Solicitud no encontrada")
		return models.Request{}, false
	}

	var req models.Request
	if err := database.DB.
		Preload("Status").Preload("Project").Preload("Student").
		First(&req, id).Error; err != nil {
		c.String(http.StatusNotFound, "Solicitud no encontrada")
		return models.Request{}, false
	}
	return req, true
}

func ShowReviewRequest(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	kind, _ := middleware.CurrentRole(c)

	req, ok := loadRequest(c)
	if !ok {
		return
	}
	if !canReviewRequest(user, kind, req) {
		c.String(http.StatusForbidden, "No tienes permiso para revisar esta solicitud")
		return
	}

	var files []models.File
	database.DB.Where("request_id = ?", req.ID).Find(&files)

	var statuses []models.Status
	database.DB.Order("id asc").Find(&statuses)

	render(c, http.StatusOK, "review_request.html", gin.H{
		"Request":  req,
		"Files":    files,
		"Statuses": statuses,
	})
}

// ReviewRequest applies a review: new status and/or comment, both optional.
// The revision date is stamped on every successful call, even when neither
// field changed, and nothing stops a reviewer from re-reviewing later.
func ReviewRequest(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	kind, _ := middleware.CurrentRole(c)

	req, ok := loadRequest(c)
	if !ok {
		return
	}
	if !canReviewRequest(user, kind, req) {
		c.String(http.StatusForbidden, "No tienes permiso para revisar esta solicitud")
		return
	}

	changes := map[string]interface{}{
		"revision_date": time.Now(),
	}

	if statusStr := c.PostForm("status"); statusStr != "" {
		statusID, err := strconv.Atoi(statusStr)
		if err != nil || statusID <= 0 {
			c.String(http.StatusBadRequest, "Estado inválido")
			return
		}
		var status models.Status
		if err := database.DB.First(&status, statusID).Error; err != nil {
			c.String(http.StatusNotFound, "Estado no encontrado")
			return
		}
		changes["status_id"] = status.ID
	}

	if comment := strings.TrimSpace(c.PostForm("professorComment")); comment != "" {
		changes["professor_comment"] = comment
	}

	if err := database.DB.Model(&models.Request{}).Where("id = ?", req.ID).
		Updates(changes).Error; err != nil {
		c.String(http.StatusInternalServerError, "Error al guardar la revisión")
		return
	}

	c.Redirect(http.StatusFound, "/home")
}

func RequestDetail(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	kind, _ := middleware.CurrentRole(c)

	req, ok := loadRequest(c)
	if !ok {
		return
	}
	if !canViewRequest(user, kind, req) {
		c.String(http.StatusForbidden, "No tienes permiso para ver esta solicitud")
		return
	}

	var files []models.File
	database.DB.Where("request_id = ?", req.ID).Find(&files)

	render(c, http.StatusOK, "request_detail.html", gin.H{
		"Request": req,
		"Files":   files,
		"IsOwner": req.StudentID != nil && *req.StudentID == user.ID,
	})
}
