// Package scheduler contém os serviços de agendamento da aplicação
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/finwise/finance-insights-api/infrastructure/repository"
	"github.com/finwise/finance-insights-api/internal/config"
	"github.com/finwise/finance-insights-api/internal/domain"
	"github.com/finwise/finance-insights-api/internal/usecases/insighting"
	"github.com/finwise/finance-insights-api/pkg/utils"
)

type InsightDigestConfig struct {
	CronSchedule        string
	LookbackDays        int
	RequestDelaySeconds int
	Enabled             bool
}

// InsightDigestService recalcula periodicamente o relatório de insights
// de cada usuário ativo e persiste o resultado como snapshot, para o
// dashboard responder sem rodar a análise a cada requisição.
type InsightDigestService struct {
	scheduler           *gocron.Scheduler
	userRepo            repository.UserRepository
	transactionRepo     repository.TransactionRepository
	goalRepo            repository.GoalRepository
	snapshotRepo        repository.InsightSnapshotRepository
	insighter           insighting.Insighter
	config              InsightDigestConfig
	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
}

func NewInsightDigestService(
	userRepo repository.UserRepository,
	transactionRepo repository.TransactionRepository,
	goalRepo repository.GoalRepository,
	snapshotRepo repository.InsightSnapshotRepository,
	insighter insighting.Insighter,
	cfg *config.Config,
) *InsightDigestService {
	digestConfig := InsightDigestConfig{
		CronSchedule:        cfg.InsightDigest.CronSchedule, // Default: 5h da manhã todos os dias
		LookbackDays:        cfg.InsightDigest.LookbackDays,
		RequestDelaySeconds: cfg.InsightDigest.RequestDelaySeconds,
		Enabled:             cfg.InsightDigest.Enabled, // Default: desabilitado
	}

	scheduler := gocron.NewScheduler(time.Local)

	logrus.WithFields(logrus.Fields{
		"cron_schedule": digestConfig.CronSchedule,
		"lookback_days": digestConfig.LookbackDays,
	}).Info("Configuração do agendador do digest de insights carregada")

	return &InsightDigestService{
		scheduler:       scheduler,
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
		goalRepo:        goalRepo,
		snapshotRepo:    snapshotRepo,
		insighter:       insighter,
		config:          digestConfig,
	}
}

func (s *InsightDigestService) Start(ctx context.Context) error {
	if !s.config.Enabled {
		logrus.Info("Cron do digest de insights desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando cron do digest de insights")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		if err := s.RunDigest(); err != nil {
			logrus.WithError(err).Error("Erro na execução do digest de insights")
		}
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar digest de insights: %w", err)
	}

	// Executar o cron em uma goroutine separada
	s.scheduler.StartAsync()

	// Configurar o cancelamento do cron quando o contexto for cancelado
	go func() {
		<-ctx.Done()
		logrus.Info("Parando cron do digest de insights")
		s.scheduler.Stop()
	}()

	return nil
}

// RunDigest processa todos os usuários ativos. Execuções concorrentes
// são descartadas.
func (s *InsightDigestService) RunDigest() error {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	if s.syncRunning {
		logrus.Warn("Digest de insights já está em execução")
		return nil
	}

	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	defer func() {
		s.syncRunning = false
		s.lastSyncCompletedAt = time.Now()
	}()

	logrus.Info("Iniciando digest de insights")

	userIDs, err := s.userRepo.ListActiveIDs()
	if err != nil {
		logrus.WithError(err).Error("Erro ao buscar usuários ativos para o digest de insights")
		return err
	}

	if len(userIDs) == 0 {
		logrus.Info("Nenhum usuário ativo para o digest de insights")
		return nil
	}

	processed := 0
	for _, userID := range userIDs {
		if err := s.processUser(userID); err != nil {
			logrus.WithError(err).WithField("user_id", userID).Error("Erro ao processar usuário no digest de insights")
			continue
		}
		processed++

		// Pausa opcional entre usuários para aliviar o banco
		if s.config.RequestDelaySeconds > 0 {
			time.Sleep(time.Duration(s.config.RequestDelaySeconds) * time.Second)
		}
	}

	logrus.WithFields(logrus.Fields{
		"total_users": len(userIDs),
		"processed":   processed,
	}).Info("Digest de insights concluído")

	return nil
}

func (s *InsightDigestService) processUser(userID string) error {
	since := utils.DateOnlyUTC(time.Now().AddDate(0, 0, -s.config.LookbackDays))

	transactions, err := s.transactionRepo.ListByUserSince(userID, since)
	if err != nil {
		return err
	}

	goals, err := s.goalRepo.ListActiveByUser(userID)
	if err != nil {
		return err
	}

	report := s.insighter.Analyze(transactions, goals, nil)

	snapshot := &domain.InsightSnapshot{
		ID:          utils.GenerateID(),
		UserID:      userID,
		GeneratedAt: time.Now(),
		Report:      *report,
	}

	return s.snapshotRepo.SaveOrUpdate(snapshot)
}
