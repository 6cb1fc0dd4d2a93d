package container

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/mumanal/actualizacion-datos/config"
	"github.com/mumanal/actualizacion-datos/internal/infrastructure/queue"
)

// app-level container to share constructed components across packages.
// Optional backends stay nil when they are not configured.

var (
	cfg         *config.Config
	logger      *logrus.Logger
	redisClient *redis.Client
	rabbit      *queue.Rabbit
	esClient    *elasticsearch.Client
)

func SetConfig(c *config.Config) { cfg = c }
func GetConfig() *config.Config  { return cfg }
func SetLogger(l *logrus.Logger) { logger = l }
func GetLogger() *logrus.Logger  { return logger }
func SetRedis(r *redis.Client)   { redisClient = r }
func GetRedis() *redis.Client    { return redisClient }
func SetRabbit(r *queue.Rabbit)  { rabbit = r }
func GetRabbit() *queue.Rabbit   { return rabbit }

func SetES(c *elasticsearch.Client) { esClient = c }
func GetES() *elasticsearch.Client  { return esClient }

// Reset clears every component; tests use it between engines.
func Reset() {
	cfg, logger, redisClient, rabbit, esClient = nil, nil, nil, nil, nil
}
