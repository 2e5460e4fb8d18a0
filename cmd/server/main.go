package main

import (
	"context"
	"log"
	"strings"
	"time"

	"anoa.com/rhythmrank/internal/cache"
	"anoa.com/rhythmrank/internal/config"
	"anoa.com/rhythmrank/internal/handler"
	"anoa.com/rhythmrank/internal/middleware"
	"anoa.com/rhythmrank/internal/migration"
	"anoa.com/rhythmrank/internal/model"
	"anoa.com/rhythmrank/internal/repository"
	"anoa.com/rhythmrank/internal/service"
	"anoa.com/rhythmrank/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	db, err := database.Open(cfg.DBDriver, cfg.DSN())
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	ctx := context.Background()

	engine := migration.NewEngine(db)
	if !engine.Applied() {
		if err := engine.Up(ctx); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
	}

	if err := seedPrivileges(db); err != nil {
		log.Fatalf("failed to seed privileges: %v", err)
	}

	channelRepo := repository.NewChannelRepository(db)
	if err := seedChannels(ctx, channelRepo); err != nil {
		log.Fatalf("failed to seed channels: %v", err)
	}

	var lbCache *cache.LeaderboardCache
	if cfg.RedisURL != "" {
		lbCache, err = cache.NewLeaderboardCache(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
	}

	userRepo := repository.NewUserRepository(db)
	beatmapRepo := repository.NewBeatmapRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	leaderboardRepo := repository.NewLeaderboardRepository(db)
	perfRepo := repository.NewPerformanceRepository(db)
	statsRepo := repository.NewStatsRepository(db)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret)
	authHandler := handler.NewAuthHandler(authService)

	leaderboardService := service.NewLeaderboardService(leaderboardRepo, scoreRepo, perfRepo, lbCache)
	performanceService := service.NewPerformanceService(perfRepo, scoreRepo, beatmapRepo, leaderboardService)
	leaderboardHandler := handler.NewLeaderboardHandler(leaderboardService, performanceService)

	socialRepo := repository.NewSocialRepository(db)
	userService := service.NewUserService(userRepo, socialRepo, leaderboardService)
	statsService := service.NewStatsService(statsRepo, scoreRepo)
	userHandler := handler.NewUserHandler(userService, statsService)

	beatmapService := service.NewBeatmapService(beatmapRepo, leaderboardService)
	beatmapHandler := handler.NewBeatmapHandler(beatmapService)

	scoreService := service.NewScoreService(scoreRepo, beatmapRepo, statsService, leaderboardService)
	scoreHandler := handler.NewScoreHandler(scoreService)

	leaderboardService.StartCacheRefresher(ctx, cfg.CacheRefreshInterval)

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Split(cfg.AllowedOrigins, ","),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authMiddleware := middleware.NewAuthMiddleware(userRepo, cfg.JWTSecret)

	api := router.Group("/api")
	{
		auth := api.Group("/auth")
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)

		api.GET("/users/:id", userHandler.GetUser)
		api.GET("/users/:id/stats", userHandler.GetStats)
		api.GET("/users/:id/rating", leaderboardHandler.UserRating)
		api.GET("/beatmaps", beatmapHandler.GetByMd5)
		api.GET("/beatmaps/:bid", beatmapHandler.Get)
		api.GET("/beatmaps/:bid/leaderboard", leaderboardHandler.Scoreboard)
	}

	api.Use(authMiddleware.RequireAuth())
	{
		api.POST("/scores", scoreHandler.Submit)
		api.GET("/scores/:id", scoreHandler.Get)
		api.GET("/scores", scoreHandler.ListMine)
		api.POST("/beatmaps/ratings", beatmapHandler.Rate)
		api.POST("/hardware", userHandler.RecordHardware)
		api.GET("/users/:id/privileges", userHandler.GetPrivileges)
		api.POST("/follows", userHandler.Follow)
		api.GET("/follows", userHandler.Following)
		api.DELETE("/follows/:id", userHandler.Unfollow)
		api.POST("/favourites", userHandler.Favourite)
		api.GET("/favourites", userHandler.Favourites)
		api.DELETE("/favourites/:sid", userHandler.Unfavourite)

		admin := api.Group("/admin")
		admin.Use(authMiddleware.RequirePrivilege("admin"))
		{
			admin.POST("/beatmaps", beatmapHandler.Upsert)
			admin.DELETE("/beatmaps/:bid", beatmapHandler.Delete)
			admin.POST("/scores/:id/verify", scoreHandler.Verify)
			admin.POST("/pp", leaderboardHandler.IngestPP)
			admin.POST("/users/:id/privileges", userHandler.GrantPrivilege)
			admin.DELETE("/users/:id/privileges/:privilege_id", userHandler.RevokePrivilege)
			admin.POST("/users/:id/stats/recompute", userHandler.RecomputeStats)
			admin.DELETE("/users/:id", userHandler.DeleteUser)
		}
	}

	if err := router.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func seedPrivileges(db *gorm.DB) error {
	admin := "Full server administration"
	bot := "Automated clients (pp calculator, map sync)"
	defaultPrivileges := []model.Privilege{
		{Name: "admin", Description: &admin, Priority: 1},
		{Name: "bot", Description: &bot, Priority: 10},
	}

	for _, privilege := range defaultPrivileges {
		var count int64
		if err := db.Model(&model.Privilege{}).
			Where("name = ?", privilege.Name).
			Count(&count).Error; err != nil {
			return err
		}

		if count == 0 {
			if err := db.Create(&privilege).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

func seedChannels(ctx context.Context, repo repository.ChannelRepository) error {
	name := "#osu"
	desc := "General discussion"
	announce := "#announce"
	announceDesc := "Server announcements"

	channels := []model.Channel{
		{ID: 1, ChannelType: model.ChannelPublic, Name: &name, Description: &desc, AutoJoin: true},
		{ID: 2, ChannelType: model.ChannelPublic, Name: &announce, Description: &announceDesc, AutoJoin: true},
	}

	for i := range channels {
		if err := repo.Ensure(ctx, &channels[i]); err != nil {
			return err
		}
	}

	return nil
}
