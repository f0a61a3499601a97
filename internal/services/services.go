package services

import (
	"go.uber.org/zap"
	"gorm.io/gorm"

	"contexthub/internal/cache"
	"contexthub/internal/repositories"
)

// Services aggregates all domain services backed by the database.
type Services struct {
	Sessions SessionService
	Contexts ContextService
}

// NewServices constructs the service container using repositories backed by
// db. contextCache may be nil to run without a fast path.
func NewServices(db *gorm.DB, contextCache cache.ContextCache, logger *zap.Logger) *Services {
	projectRepo := repositories.NewProjectRepository(db)
	sessionRepo := repositories.NewAISessionRepository(db)
	clearEventRepo := repositories.NewClearEventRepository(db)
	conversationRepo := repositories.NewConversationRepository(db)

	return &Services{
		Sessions: NewSessionService(projectRepo, sessionRepo, clearEventRepo, logger),
		Contexts: NewContextService(conversationRepo, contextCache, logger),
	}
}
