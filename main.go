package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/beka-birhanu/vinom-agents/api"
	api_i "github.com/beka-birhanu/vinom-agents/api/i"
	simulationapi "github.com/beka-birhanu/vinom-agents/api/simulation"
	"github.com/beka-birhanu/vinom-agents/config"
	logger "github.com/beka-birhanu/vinom-agents/infrastruture/log"
	"github.com/beka-birhanu/vinom-agents/infrastruture/repo"
	"github.com/beka-birhanu/vinom-agents/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-agents/service"
	"github.com/beka-birhanu/vinom-agents/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	redisClient          *redis.Client
	mongoClient          *mongo.Client
	scoreboard           i.Scoreboard
	runRepo              i.RunRepo
	simulationManager    *service.SimulationManager
	simulationController api_i.Controller
	router               *api.Router
	appLogger            *logger.Logger
)

func newLogger(prefix, color string) *logger.Logger {
	l, err := logger.New(prefix, color, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Creating %s logger: %v\n", prefix, err)
		os.Exit(1)
	}
	if err := l.SetLevel(config.Envs.LogLevel); err != nil {
		l.Warning(fmt.Sprintf("Invalid log level %q, keeping info: %v", config.Envs.LogLevel, err))
	}
	return l
}

func initScoreboard(ctx context.Context) {
	var err error
	if config.Envs.RedisAddr == "" {
		scoreboard, err = sortedstorage.NewMemoryScoreboard(config.Envs.ScoreboardSize)
		if err != nil {
			appLogger.Error(fmt.Sprintf("Creating in-memory scoreboard: %v", err))
			os.Exit(1)
		}
		appLogger.Warning("REDIS_ADDR not set, keeping the scoreboard in memory")
		return
	}

	redisClient = redis.NewClient(&redis.Options{
		Addr:     config.Envs.RedisAddr,
		Password: config.Envs.RedisPassword,
	})
	if err = redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		os.Exit(1)
	}

	scoreboard, err = sortedstorage.NewRedisScoreboard(redisClient, config.Envs.ScoreboardTTL, config.Envs.ScoreboardSize)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating redis scoreboard: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Connected to Redis scoreboard")
}

func initRunRepo(ctx context.Context) {
	if config.Envs.MongoURI == "" {
		runRepo = repo.NewMemoryRunRepo()
		appLogger.Warning("MONGO_URI not set, keeping the run archive in memory")
		return
	}

	var err error
	mongoClient, err = mongo.Connect(ctx, options.Client().ApplyURI(config.Envs.MongoURI))
	if err != nil {
		appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		os.Exit(1)
	}

	runRepo = repo.NewRunRepo(mongoClient, config.Envs.MongoDB, "runs")
	appLogger.Info("Connected to MongoDB run archive")
}

func initSimulationManager() {
	var err error
	simulationManager, err = service.NewSimulationManager(&service.Config{
		Scoreboard:  scoreboard,
		RunRepo:     runRepo,
		Logger:      newLogger("SIMULATION", config.ColorCyan),
		MaxSessions: config.Envs.MaxSessions,
		MaxTicks:    config.Envs.SessionMaxTicks,
	})
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating simulation manager: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Simulation manager initialized")
}

func initSimulationController() {
	var err error
	simulationController, err = simulationapi.NewController(simulationManager)
	if err != nil {
		appLogger.Error(fmt.Sprintf("Creating simulation controller: %v", err))
		os.Exit(1)
	}
	appLogger.Info("Simulation controller initialized")
}

func initRouter() {
	gin.SetMode(config.Envs.GinMode)
	router = api.NewRouter(api.Config{
		Addr:        fmt.Sprintf("%s:%v", config.Envs.HostIP, config.Envs.RESTPort),
		BaseURL:     "/api",
		Controllers: []api_i.Controller{simulationController},
		Middlewares: []gin.HandlerFunc{gin.Logger()},
	})
	appLogger.Info("Router initialized")
}

func main() {
	appLogger = newLogger("APP", config.ColorGreen)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	initScoreboard(ctx)
	if redisClient != nil {
		defer redisClient.Close()
	}
	initRunRepo(ctx)
	if mongoClient != nil {
		defer func() {
			_ = mongoClient.Disconnect(context.Background())
		}()
	}

	initSimulationManager()
	initSimulationController()
	initRouter()

	go func() {
		if err := router.Run(); err != nil {
			appLogger.Error(fmt.Sprintf("Starting server: %v", err))
			os.Exit(1)
		}
	}()

	stop, release := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer release()
	<-stop.Done()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	simulationManager.StopAll(shutdownCtx)
	appLogger.Info("Archived live simulations, shutting down")
}
