package router

import (
	"net/http"
	"net/url"
	"strings"

	"yatube/internal/config"
	"yatube/internal/handlers"
	"yatube/internal/middleware"
	"yatube/internal/services"
	"yatube/internal/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// groupCacheSize bounds the group read cache.
const groupCacheSize = 256

// Services bundles everything the handlers depend on.
type Services struct {
	Images   *services.ImageStore
	Users    *services.UserService
	Tokens   *services.TokenService
	Posts    *services.PostService
	Comments *services.CommentService
	Groups   *services.GroupService
	Follows  *services.FollowService
}

func NewServices(cfg *config.Config, db *gorm.DB) *Services {
	images := services.NewImageStore(cfg.Media.Root, cfg.Media.URL)
	users := services.NewUserService(db, images)
	return &Services{
		Images:   images,
		Users:    users,
		Tokens:   services.NewTokenService(cfg.Auth.Secret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL),
		Posts:    services.NewPostService(db, images),
		Comments: services.NewCommentService(db),
		Groups:   services.NewGroupService(db, utils.NewCache(groupCacheSize)),
		Follows:  services.NewFollowService(db, users),
	}
}

// Setup builds the engine with every API route registered.
func Setup(cfg *config.Config, svc *Services) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(func(c *gin.Context, err any) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "A server error occurred."})
	}))
	r.HandleMethodNotAllowed = true
	r.NoRoute(handlers.RespondNotFound)
	r.NoMethod(handlers.RespondMethodNotAllowed)

	RegisterRoutes(r, svc)

	if prefix, ok := mediaPrefix(cfg.Media.URL); ok {
		imageHandler := handlers.NewImageHandler(svc.Images)
		r.GET(prefix+"*filepath", imageHandler.Serve)
		r.HEAD(prefix+"*filepath", imageHandler.Serve)
	}
	return r
}

func RegisterRoutes(r *gin.Engine, svc *Services) {
	authHandler := handlers.NewAuthHandler(svc.Users, svc.Tokens)
	userHandler := handlers.NewUserHandler(svc.Users)
	postHandler := handlers.NewPostHandler(svc.Posts, svc.Images)
	commentHandler := handlers.NewCommentHandler(svc.Comments)
	groupHandler := handlers.NewGroupHandler(svc.Groups)
	followHandler := handlers.NewFollowHandler(svc.Follows)

	v1 := r.Group("/v1")
	v1.Use(middleware.LoadUser(svc.Tokens, svc.Users))

	v1.GET("/", handlers.APIRoot)

	// Tokens and accounts
	v1.POST("/jwt/create/", authHandler.CreateToken)
	v1.POST("/jwt/refresh/", authHandler.RefreshToken)
	v1.POST("/jwt/verify/", authHandler.VerifyToken)
	v1.POST("/auth/users/", userHandler.Register)
	v1.GET("/auth/users/me/", middleware.AuthRequired(), userHandler.Me)

	// Reads are public
	v1.GET("/posts/", postHandler.List)
	v1.GET("/posts/:post_id/", postHandler.Get)
	v1.GET("/posts/:post_id/comments/", commentHandler.List)
	v1.GET("/posts/:post_id/comments/:id/", commentHandler.Get)
	v1.GET("/groups/", groupHandler.List)
	v1.GET("/groups/:id/", groupHandler.Get)

	authorized := v1.Group("/")
	authorized.Use(middleware.AuthRequired())
	{
		authorized.POST("/posts/", postHandler.Create)
		authorized.PUT("/posts/:post_id/", postHandler.Update)
		authorized.PATCH("/posts/:post_id/", postHandler.Update)
		authorized.DELETE("/posts/:post_id/", postHandler.Delete)

		authorized.POST("/posts/:post_id/comments/", commentHandler.Create)
		authorized.PUT("/posts/:post_id/comments/:id/", commentHandler.Update)
		authorized.PATCH("/posts/:post_id/comments/:id/", commentHandler.Update)
		authorized.DELETE("/posts/:post_id/comments/:id/", commentHandler.Delete)

		authorized.GET("/follow/", followHandler.List)
		authorized.POST("/follow/", followHandler.Create)
	}
}

// mediaPrefix returns the route prefix for a local media URL. Absolute
// URLs point at another host and are not served here.
func mediaPrefix(mediaURL string) (string, bool) {
	u, err := url.Parse(mediaURL)
	if err != nil || u.Host != "" || u.Path == "" {
		return "", false
	}
	p := u.Path
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p, true
}
