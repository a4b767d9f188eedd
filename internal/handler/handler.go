package handler

import (
	"context"

	"github.com/BloggingApp/world-service/internal/model"
	"github.com/BloggingApp/world-service/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	r := gin.New()

	r.Use(cors.New(cors.Config{
		AllowOrigins: []string{viper.GetString("client.origin")},
		AllowMethods: []string{"POST", "GET", "PATCH", "DELETE"},
		AllowCredentials: true,
	}))

	v1 := r.Group("/api/v1")
	{
		worlds := v1.Group("/worlds")
		{
			worlds.POST("", h.authMiddleware, h.worldsCreate)

			w := worlds.Group("/:worldID")
			{
				w.GET("/state", h.authMiddleware, h.worldsState)
				w.POST("/undo", h.moderatorMiddleware, h.worldsUndo)
				w.POST("/redo", h.moderatorMiddleware, h.worldsRedo)

				users := w.Group("/users")
				{
					users.POST("", h.authMiddleware, h.usersCreate)
					users.PATCH("/:userID", h.moderatorMiddleware, h.usersEdit)
					users.POST("/:userID/review", h.moderatorMiddleware, h.usersReview)
				}

				posts := w.Group("/posts")
				{
					posts.POST("", h.authMiddleware, h.postsCreate)
					posts.PATCH("/:postID", h.authMiddleware, h.postsEdit)
					posts.GET("/:postID/visibility", h.notRequiredAuthMiddleware, h.postsVisibility)
				}
			}
		}
	}

	return r
}

func (h *Handler) getUserDataFromClaims(ctx context.Context, claims jwt.MapClaims) (*model.CachedUser, error) {
	idString := claims["id"].(string)
	id, err := uuid.Parse(idString)
	if err != nil {
		return nil, err
	}

	user, err := h.services.UserCache.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (h *Handler) getUserFromRequest(c *gin.Context) *model.CachedUser {
	userReq, _ := c.Get("user")

	user, ok := userReq.(model.CachedUser)
	if !ok {
		return nil
	}

	return &user
}
