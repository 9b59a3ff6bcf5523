package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/folio/folio/internal/apperr"
	"github.com/folio/folio/internal/models"
	"github.com/folio/folio/internal/portfolio/service"
)

// RegisterPublicRoutes mounts the anonymous content reads and the contact form
// on api (usually the /api group). contactMW runs before the contact handler,
// typically a rate limiter.
func RegisterPublicRoutes(api *gin.RouterGroup, svc *service.Service, contactMW ...gin.HandlerFunc) {
	api.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, models.MessageResponse{Message: "Portfolio API v1.0.0"})
	})

	pub := api.Group("/portfolio")
	getDoc(pub, "/hero", svc.Hero)
	getDoc(pub, "/about", svc.About)
	getDoc(pub, "/skills", svc.Skills)
	getDoc(pub, "/settings", svc.Settings)
	getList(pub, "/education", svc.Education)
	getList(pub, "/experience", svc.Experience)
	getList(pub, "/projects", svc.Projects)
	getList(pub, "/certifications", svc.Certifications)
	getList(pub, "/testimonials", svc.Testimonials)
	getList(pub, "/blog", svc.Blog)

	api.POST("/contact", append(contactMW, contact(svc.Messages))...)
}

// RegisterAdminRoutes mounts the content writes on admin, which must already
// carry the authentication middleware.
func RegisterAdminRoutes(admin *gin.RouterGroup, svc *service.Service) {
	putDoc(admin, "/hero", svc.Hero)
	putDoc(admin, "/about", svc.About)
	putDoc(admin, "/skills", svc.Skills)
	putDoc(admin, "/settings", svc.Settings)
	crud(admin, "/education", svc.Education)
	crud(admin, "/experience", svc.Experience)
	crud(admin, "/projects", svc.Projects)
	crud(admin, "/certifications", svc.Certifications)
	crud(admin, "/testimonials", svc.Testimonials)
	crud(admin, "/blog/articles", svc.Blog)

	admin.GET("/contact-messages", func(c *gin.Context) {
		msgs, err := svc.Messages.List(c.Request.Context())
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, msgs)
	})
}

func getDoc[T any](g *gin.RouterGroup, path string, s *service.Singleton[T]) {
	g.GET(path, func(c *gin.Context) {
		doc, err := s.Get(c.Request.Context())
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	})
}

func putDoc[T any](g *gin.RouterGroup, path string, s *service.Singleton[T]) {
	g.PUT(path, func(c *gin.Context) {
		body, ok := rawBody(c)
		if !ok {
			return
		}
		doc, err := s.Update(c.Request.Context(), body)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	})
}

func getList[T models.Item](g *gin.RouterGroup, path string, l *service.List[T]) {
	g.GET(path, func(c *gin.Context) {
		items, err := l.Public(c.Request.Context())
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	})
}

func crud[T models.Item](g *gin.RouterGroup, path string, l *service.List[T]) {
	g.GET(path, func(c *gin.Context) {
		items, err := l.All(c.Request.Context())
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, items)
	})

	g.POST(path, func(c *gin.Context) {
		body, ok := rawBody(c)
		if !ok {
			return
		}
		item, err := l.Create(c.Request.Context(), body)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	})

	g.PUT(path+"/:id", func(c *gin.Context) {
		body, ok := rawBody(c)
		if !ok {
			return
		}
		item, err := l.Update(c.Request.Context(), c.Param("id"), body)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, item)
	})

	g.DELETE(path+"/:id", func(c *gin.Context) {
		if err := l.Delete(c.Request.Context(), c.Param("id")); err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, models.MessageResponse{Message: l.Label() + " deleted successfully"})
	})
}

func contact(inbox *service.Inbox) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req models.ContactRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			apperr.Respond(c, apperr.E(apperr.CodeInvalidArgument, "contact", "name, email, subject and message are required and email must be valid", err))
			return
		}
		msg, err := inbox.Submit(c.Request.Context(), req)
		if err != nil {
			apperr.Respond(c, err)
			return
		}
		c.JSON(http.StatusOK, models.MessageResponse{
			Message: "Message sent successfully!",
			Data:    gin.H{"id": msg.ID},
		})
	}
}

func rawBody(c *gin.Context) ([]byte, bool) {
	body, err := c.GetRawData()
	if err != nil {
		apperr.Respond(c, apperr.E(apperr.CodeInvalidArgument, "body", "could not read request body", err))
		return nil, false
	}
	if len(body) == 0 {
		body = []byte("{}")
	}
	return body, true
}
