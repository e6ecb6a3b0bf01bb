package api

import (
	"net/http"

	"motionfit/routine-app/internal/domain"
	"motionfit/routine-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	trainerService service.TrainerService,
	plannerService service.PlannerService,
	sessionService service.SessionService,
	catalogService service.CatalogService,
) {
	authHandler := NewAuthHandler(authService)
	trainerHandler := NewTrainerHandler(trainerService)
	plannerHandler := NewPlannerHandler(plannerService)
	sessionHandler := NewSessionHandler(sessionService)
	catalogHandler := NewCatalogHandler(catalogService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Exercise Library ---
		catalogGroup := protected.Group("/catalog")
		{
			catalogGroup.POST("/exercises", RoleMiddleware(domain.RoleTrainer, domain.RoleAdmin), catalogHandler.UpsertExercise)
			catalogGroup.GET("/exercises", catalogHandler.ListExercises)
			catalogGroup.GET("/exercises/:name", catalogHandler.ResolveExercise)
			catalogGroup.GET("/exercises/:name/weights", catalogHandler.GetWeightOptions)
			catalogGroup.GET("/exercises/:name/video", catalogHandler.GetDemoVideo)
			catalogGroup.POST("/exercises/:name/video-upload-url", RoleMiddleware(domain.RoleTrainer, domain.RoleAdmin), catalogHandler.GetVideoUploadURL)
			catalogGroup.GET("/implements", catalogHandler.ListImplements)
		}

		// --- Block Authoring (trainers and admins only) ---
		plannerGroup := protected.Group("/planner")
		plannerGroup.Use(RoleMiddleware(domain.RoleTrainer, domain.RoleAdmin))
		{
			plannerGroup.POST("/preview", plannerHandler.PreviewBlock)
			plannerGroup.POST("/blocks", plannerHandler.CreateBlock)
			plannerGroup.GET("/weeks", plannerHandler.ListWeeks)
			plannerGroup.GET("/weeks/:monday", plannerHandler.LoadWeek)
			plannerGroup.GET("/weeks/:monday/position", plannerHandler.GetBlockPosition)
		}

		// --- Session Recording (any authenticated role) ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.PUT("/:monday/days/:day", sessionHandler.SaveDay)
			sessionGroup.POST("/:monday/days/:day/results", sessionHandler.SubmitResult)
			sessionGroup.POST("/:monday/days/:day/previous", sessionHandler.GetPreviousSession)
		}

		// --- Trainer Roster ---
		trainerGroup := protected.Group("/trainer")
		trainerGroup.Use(RoleMiddleware(domain.RoleTrainer, domain.RoleAdmin))
		{
			trainerGroup.POST("/athletes", trainerHandler.AddAthleteByEmail)
			trainerGroup.GET("/athletes", trainerHandler.GetManagedAthletes)
		}
	}
}
