package web

import (
	"net/http"
	"time"

	"github.com/akstore/bookstore-admin/internal/models"
	"github.com/akstore/bookstore-admin/internal/util"
)

type dashboardView struct {
	Report    *models.Report
	Income    *models.Income
	TimeRange string
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	sess := sessionFromContext(r)

	timeRange := r.URL.Query().Get("timeRange")
	switch timeRange {
	case "day", "week", "month", "year":
	default:
		timeRange = "day"
	}
	from, to := util.DateRange(timeRange, time.Now())

	report, err := s.app.API.GetReports(r.Context(), sess)
	if err != nil {
		s.renderLoaderError(w, r, err)
		return
	}
	income, err := s.app.API.GetIncome(r.Context(), sess, from, to)
	if err != nil {
		s.renderLoaderError(w, r, err)
		return
	}

	s.render(w, r, "dashboard", &viewData{
		Title: "dashboard.title",
		Data:  dashboardView{Report: report, Income: income, TimeRange: timeRange},
	})
}
