package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RecordsController lists imported members, projects and events.
type RecordsController struct {
	members  MemberLister
	projects ProjectLister
	events   EventLister
}

func NewRecordsController(members MemberLister, projects ProjectLister, events EventLister) *RecordsController {
	return &RecordsController{
		members:  members,
		projects: projects,
		events:   events,
	}
}

// ListMembers handles GET /api/members
func (rc *RecordsController) ListMembers(c *gin.Context) {
	limit, offset, ok := parsePagination(c)
	if !ok {
		return
	}

	members, total, err := rc.members.ListMembers(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list members")
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(members, total, limit, offset))
}

// ListProjects handles GET /api/projects
func (rc *RecordsController) ListProjects(c *gin.Context) {
	limit, offset, ok := parsePagination(c)
	if !ok {
		return
	}

	projects, total, err := rc.projects.ListProjects(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list projects")
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(projects, total, limit, offset))
}

// ListEvents handles GET /api/events
func (rc *RecordsController) ListEvents(c *gin.Context) {
	limit, offset, ok := parsePagination(c)
	if !ok {
		return
	}

	events, total, err := rc.events.ListEvents(limit, offset)
	if err != nil {
		respondInternalError(c, err, "list events")
		return
	}

	c.JSON(http.StatusOK, newPaginatedResponse(events, total, limit, offset))
}
