package handlers

import (
	"net/http"

	"tcu-system/internal/middleware"
	"tcu-system/internal/models"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// Dashboard shows role-scoped request counts and the ten most recent
// requests. Students see their own, professors their projects', admins all.
func Dashboard(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)
	kind, _ := middleware.CurrentRole(c)

	countByStatus := func(name string) (int64, error) {
		var n int64
		err := scopedRequests(user, kind).
			Joins("JOIN statuses ON statuses.id = requests.status_id").
			Where("statuses.name = ?", name).
			Count(&n).Error
		return n, err
	}

	counts := map[string]int64{}
	for _, name := range []string{models.StatusApproved, models.StatusPending, models.StatusRejected} {
		n, err := countByStatus(name)
		if err != nil {
			c.String(http.StatusInternalServerError, "Error al cargar el resumen")
			return
		}
		counts[name] = n
	}
	approved := counts[models.StatusApproved]
	pending := counts[models.StatusPending]
	rejected := counts[models.StatusRejected]

	var recent []models.Request
	if err := scopedRequests(user, kind).
		Preload("Status").Preload("Project").Preload("Student").
		Order("date desc").Limit(10).
		Find(&recent).Error; err != nil {
		c.String(http.StatusInternalServerError, "Error al cargar el resumen")
		return
	}

	// warnings/notices left by redirecting handlers
	sess := sessions.Default(c)
	flashes := sess.Flashes()
	_ = sess.Save()

	render(c, http.StatusOK, "dashboard.html", gin.H{
		"ApprovedCount":  approved,
		"PendingCount":   pending,
		"RejectedCount":  rejected,
		"TotalCount":     approved + pending + rejected,
		"RecentRequests": recent,
		"Flashes":        flashes,
	})
}
