package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/vibecheck/vibecheck/file_store"
	"github.com/vibecheck/vibecheck/server"
	"github.com/vibecheck/vibecheck/server/middlewares"
	"github.com/vibecheck/vibecheck/utils"
	"github.com/vibecheck/vibecheck/utils/dotenv"
	. "github.com/vibecheck/vibecheck/utils/flag"
	. "github.com/vibecheck/vibecheck/utils/log"
	gintrace "gopkg.in/DataDog/dd-trace-go.v1/contrib/gin-gonic/gin"
)

const (
	rateLimitPerMinute = 300
)

func init() {
	// Middlewares
	middlewares.Setup()

	Log.Info("api server initialized")
}

func cleanup() {
	utils.CloseProfiler()
	utils.CloseTracer()
	Log.Info("api server shutdown")
}

func main() {
	defer cleanup()

	if err := dotenv.LoadDotEnvs(); err != nil {
		panic(err)
	}

	db, err := utils.GetDBConnection()
	if err != nil {
		Log.Fatal("fail to connect to DB: ", err)
	}
	utils.DatabaseSetupAndMigration(db)

	fileStore, err := file_store.NewS3FileStore(os.Getenv("AWS_S3_BUCKET_NAME"))
	if err != nil {
		Log.Fatal("fail to setup S3 file store: ", err)
	}

	// Default With the Logger and Recovery middleware already attached
	router := gin.Default()

	router.Use(cors.Default())
	router.Use(gintrace.Middleware(ServiceName))
	if host := os.Getenv("REDIS_HOST"); host != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%s", host, os.Getenv("REDIS_PORT")),
			Password: os.Getenv("REDIS_PASSWD"),
		})
		router.Use(middlewares.RateLimit(rdb, rateLimitPerMinute, time.Minute))
	}

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Health check")
	})

	server.NewServer(db, fileStore).RegisterRoutes(router)

	Log.Info("api server starts up")
	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}
	router.Run(":" + port)
}
