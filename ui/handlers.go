package ui

import (
	"html/template"
	"log"
	"net/http"
	"net/url"
	"time"

	"loadboard/app"
	"loadboard/internal/analytics"
	"loadboard/internal/charts"
	"loadboard/internal/errors"

	"github.com/gin-gonic/gin"
)

// chartLink is one chart image on the page
type chartLink struct {
	Name  charts.Name
	Title string
	URL   string
}

// dashboardPage is the data behind index.html
type dashboardPage struct {
	NoData      bool
	NoDataError string
	UploadError string
	FilterError string

	Source         string
	LoadedAt       time.Time
	Dropped        int
	MissingColumns []string

	Filter  analytics.Filter
	HourLo  float64
	HourHi  float64
	Options analytics.Options
	Summary analytics.Summary
	TopN    int

	Query  string
	Charts []chartLink
	Tips   template.HTML
}

func (s *Server) handleIndex(c *gin.Context) {
	page := &dashboardPage{Tips: s.tips, HourLo: analytics.HourMin, HourHi: analytics.HourMax}
	status := http.StatusOK

	filter, err := app.ParseFilter(c.Request.URL.Query())
	if err != nil {
		page.FilterError = err.Error()
		status = errors.HTTPStatus(err)
		filter = analytics.Filter{}
	}
	if err := s.fill(c, page, filter); err != nil {
		if !errors.Is(err, errors.CodeNoData) {
			log.Printf("[Dashboard] Failed to build dashboard: %v", err)
			c.AbortWithStatusJSON(errors.HTTPStatus(err), gin.H{"error": err.Error(), "code": errors.GetCode(err)})
			return
		}
		page.NoData = true
		page.NoDataError = err.Error()
	}
	s.renderTemplate(c, status, "index.html", page)
}

// fill computes everything the page shows for the filter
func (s *Server) fill(c *gin.Context, page *dashboardPage, filter analytics.Filter) error {
	ctx := c.Request.Context()
	table, err := s.dashboard.Table(ctx)
	if err != nil {
		return err
	}
	summary, err := s.dashboard.Summary(ctx, filter)
	if err != nil {
		return err
	}
	options, err := s.dashboard.Options(ctx)
	if err != nil {
		return err
	}

	health := s.dashboard.Health(ctx)
	page.Source = health.Source
	if health.LoadedAt != nil {
		page.LoadedAt = *health.LoadedAt
	}
	page.Dropped = table.Dropped
	page.MissingColumns = table.MissingColumns
	page.Filter = filter
	if filter.Hours != nil {
		page.HourLo, page.HourHi = filter.Hours.Lo, filter.Hours.Hi
	}
	page.Options = options
	page.Summary = summary
	page.TopN = len(summary.Instructors)

	query := app.EncodeFilter(filter).Encode()
	page.Query = query
	for _, name := range charts.Names {
		page.Charts = append(page.Charts, chartLink{
			Name:  name,
			Title: name.Title(),
			URL:   withQuery("/api/charts/"+string(name)+".png", query),
		})
	}
	return nil
}

func (s *Server) handleUpload(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		s.renderUploadError(c, errors.InvalidInput("choose an .xlsx or .csv file to upload"))
		return
	}
	f, err := fh.Open()
	if err != nil {
		s.renderUploadError(c, errors.Wrap(err, "failed to open upload"))
		return
	}
	defer f.Close()

	table, err := s.dashboard.Upload(c.Request.Context(), fh.Filename, f)
	if err != nil {
		s.renderUploadError(c, err)
		return
	}
	log.Printf("[Upload] %s accepted: %d sessions", fh.Filename, table.Len())
	c.Redirect(http.StatusSeeOther, "/")
}

// renderUploadError shows the page again with the upload form and the reason
func (s *Server) renderUploadError(c *gin.Context, err error) {
	log.Printf("[Upload] Rejected: %v", err)
	page := &dashboardPage{Tips: s.tips, HourLo: analytics.HourMin, HourHi: analytics.HourMax, UploadError: err.Error()}
	if fillErr := s.fill(c, page, analytics.Filter{}); fillErr != nil {
		page.NoData = true
		page.NoDataError = fillErr.Error()
	}
	s.renderTemplate(c, errors.HTTPStatus(err), "index.html", page)
}

func withQuery(path, query string) string {
	if query == "" {
		return path
	}
	u := url.URL{Path: path, RawQuery: query}
	return u.String()
}
