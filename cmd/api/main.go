package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/finwise/finance-insights-api/infrastructure/database/postgres"
	"github.com/finwise/finance-insights-api/infrastructure/repository"
	"github.com/finwise/finance-insights-api/internal/api"
	"github.com/finwise/finance-insights-api/internal/api/handler"
	"github.com/finwise/finance-insights-api/internal/config"
	"github.com/finwise/finance-insights-api/internal/scheduler"
	"github.com/finwise/finance-insights-api/internal/usecases/authenticating"
	"github.com/finwise/finance-insights-api/internal/usecases/goal"
	"github.com/finwise/finance-insights-api/internal/usecases/ingesting"
	"github.com/finwise/finance-insights-api/internal/usecases/insighting"
	"github.com/finwise/finance-insights-api/internal/usecases/reporting"
	"github.com/finwise/finance-insights-api/internal/usecases/transaction"
)

func main() {
	// Inicializa configuração de logs
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	// Define o nível de log com base na configuração
	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.Infof("Nível de log configurado para: %s", logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pgConn := pgconn(ctx, cfg.Database)
	defer pgConn.Close()

	userRepo := repository.NewUserRepository(pgConn)
	transactionRepo := repository.NewTransactionRepository(pgConn)
	goalRepo := repository.NewGoalRepository(pgConn)
	snapshotRepo := repository.NewInsightSnapshotRepository(pgConn)

	authenticator := authenticating.NewService(userRepo, cfg)
	transactionService := transaction.NewService(transactionRepo)
	goalService := goal.NewService(goalRepo)
	reporter := reporting.NewService(transactionRepo, goalRepo, snapshotRepo)
	ingester := ingesting.NewService()
	insighter := insighting.NewService()

	insightServices := handler.InsightServices{
		TransactionRepo:    transactionRepo,
		GoalRepo:           goalRepo,
		TransactionService: transactionService,
		Ingester:           ingester,
		Insighter:          insighter,
		MaxUploadBytes:     cfg.Upload.MaxFileSizeBytes,
	}

	// Inicializa o agendador do digest de insights
	insightDigestService := scheduler.NewInsightDigestService(
		userRepo,
		transactionRepo,
		goalRepo,
		snapshotRepo,
		insighter,
		cfg,
	)

	if err := insightDigestService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador do digest de insights")
	} else {
		logrus.Info("Agendador do digest de insights iniciado com sucesso")
	}

	server, err := api.New(
		cfg,
		authenticator,
		transactionService,
		goalService,
		reporter,
		insightServices,
	)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
