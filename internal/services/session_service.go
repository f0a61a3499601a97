package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"contexthub/internal/models"
	"contexthub/internal/repositories"
)

// ClearResult reports the outcome of clearing one AI's context, so callers
// never mistake a partial clear for a full one.
type ClearResult struct {
	AIName  string `json:"aiName"`
	Cleared bool   `json:"cleared"`
	Error   string `json:"error,omitempty"`
}

type SessionService interface {
	// GetOrCreateSession resolves the durable session for (aiName, projectPath).
	// With createIfMissing false it returns (nil, nil) when no active session
	// exists instead of minting one.
	GetOrCreateSession(ctx context.Context, aiName, projectPath string, createIfMissing bool) (*models.AISession, error)
	ClearAIContext(ctx context.Context, aiName, projectPath, clearedBy string) error
	ClearAllAIContexts(ctx context.Context, projectPath, clearedBy string) ([]ClearResult, error)
	GetProjectInfo(ctx context.Context, projectPath string) (*models.ProjectInfo, error)
	ListProjects(ctx context.Context, limit int) ([]models.ProjectListing, error)
	CleanupInactiveSessions(ctx context.Context, olderThanHours int) (int64, error)
}

type sessionService struct {
	projects    repositories.ProjectRepository
	sessions    repositories.AISessionRepository
	clearEvents repositories.ClearEventRepository
	logger      *zap.Logger
}

func NewSessionService(projects repositories.ProjectRepository, sessions repositories.AISessionRepository, clearEvents repositories.ClearEventRepository, logger *zap.Logger) SessionService {
	return &sessionService{
		projects:    projects,
		sessions:    sessions,
		clearEvents: clearEvents,
		logger:      logger,
	}
}

// DeriveProjectID maps a project path to its stable identifier. The path is
// canonicalized first so "./x" and "/abs/x" resolve to the same project.
func DeriveProjectID(projectPath string) (string, string, error) {
	p := strings.TrimSpace(projectPath)
	if p == "" {
		return "", "", fmt.Errorf("project path is required")
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", "", fmt.Errorf("canonicalize project path: %w", err)
	}
	sum := sha256.Sum256([]byte(abs))
	return hex.EncodeToString(sum[:])[:16], abs, nil
}

func (s *sessionService) GetOrCreateSession(ctx context.Context, aiName, projectPath string, createIfMissing bool) (*models.AISession, error) {
	aiName = strings.TrimSpace(aiName)
	if aiName == "" {
		return nil, fmt.Errorf("ai name is required")
	}
	projectID, absPath, err := DeriveProjectID(projectPath)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	if !createIfMissing {
		sess, err := s.sessions.FindByKey(ctx, projectID, aiName)
		if err != nil {
			return nil, err
		}
		if sess == nil || sess.Cleared {
			return nil, nil
		}
		return sess, nil
	}

	if err := s.projects.Upsert(ctx, &models.Project{
		ProjectID:    projectID,
		ProjectPath:  absPath,
		ProjectName:  filepath.Base(absPath),
		CreatedAt:    now,
		LastAccessed: now,
	}); err != nil {
		return nil, fmt.Errorf("upsert project: %w", err)
	}

	// Insert-if-absent on the unique key, falling back to select on
	// conflict. Bounded retries cover the window where a concurrent clear
	// or remint moves the row under us.
	for attempt := 0; attempt < 3; attempt++ {
		sess, err := s.sessions.FindByKey(ctx, projectID, aiName)
		if err != nil {
			return nil, err
		}

		if sess == nil {
			candidate := &models.AISession{
				SessionID:    uuid.NewString(),
				ProjectID:    projectID,
				AIName:       aiName,
				CreatedAt:    now,
				LastAccessed: now,
			}
			inserted, err := s.sessions.CreateIfAbsent(ctx, candidate)
			if err != nil {
				return nil, fmt.Errorf("create session: %w", err)
			}
			if inserted {
				return candidate, nil
			}
			continue
		}

		if sess.Cleared {
			won, err := s.sessions.Remint(ctx, projectID, aiName, uuid.NewString(), now)
			if err != nil {
				return nil, fmt.Errorf("remint session: %w", err)
			}
			if !won {
				s.logger.Debug("lost remint race, reselecting",
					zap.String("project_id", projectID), zap.String("ai_name", aiName))
			}
			continue
		}

		if err := s.sessions.Touch(ctx, sess.SessionID, now); err != nil {
			return nil, err
		}
		sess.LastAccessed = now
		return sess, nil
	}
	return nil, fmt.Errorf("session for %s could not be resolved after retries", aiName)
}

func (s *sessionService) ClearAIContext(ctx context.Context, aiName, projectPath, clearedBy string) error {
	aiName = strings.TrimSpace(aiName)
	if aiName == "" {
		return fmt.Errorf("ai name is required")
	}
	projectID, _, err := DeriveProjectID(projectPath)
	if err != nil {
		return err
	}
	return s.clearSession(ctx, projectID, aiName, clearedBy)
}

func (s *sessionService) clearSession(ctx context.Context, projectID, aiName, clearedBy string) error {
	now := time.Now().UTC()
	marked, err := s.sessions.MarkCleared(ctx, projectID, aiName, now)
	if err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	if !marked {
		return fmt.Errorf("no active session for %s", aiName)
	}
	if err := s.clearEvents.Record(ctx, &models.ClearEvent{
		ProjectID: projectID,
		AIName:    aiName,
		ClearedAt: now,
		ClearedBy: clearedBy,
	}); err != nil {
		return fmt.Errorf("record clear event: %w", err)
	}
	return nil
}

// ClearAllAIContexts clears every AI session under the project and reports
// the outcome per AI. An error in one clear does not stop the sweep, but
// any failure is reflected in the returned error.
func (s *sessionService) ClearAllAIContexts(ctx context.Context, projectPath, clearedBy string) ([]ClearResult, error) {
	projectID, _, err := DeriveProjectID(projectPath)
	if err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	var results []ClearResult
	failed := 0
	for _, sess := range sessions {
		if sess.Cleared {
			continue
		}
		res := ClearResult{AIName: sess.AIName, Cleared: true}
		if err := s.clearSession(ctx, projectID, sess.AIName, clearedBy); err != nil {
			res.Cleared = false
			res.Error = err.Error()
			failed++
			s.logger.Warn("clear failed", zap.String("ai_name", sess.AIName), zap.Error(err))
		}
		results = append(results, res)
	}
	if failed > 0 {
		return results, fmt.Errorf("%d of %d contexts failed to clear", failed, len(results))
	}
	return results, nil
}

func (s *sessionService) GetProjectInfo(ctx context.Context, projectPath string) (*models.ProjectInfo, error) {
	projectID, _, err := DeriveProjectID(projectPath)
	if err != nil {
		return nil, err
	}
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, nil
	}

	sessions, err := s.sessions.ListByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}
	clears, err := s.clearEvents.CountByProject(ctx, projectID)
	if err != nil {
		return nil, err
	}

	info := &models.ProjectInfo{
		ProjectID:    project.ProjectID,
		ProjectPath:  project.ProjectPath,
		ProjectName:  project.ProjectName,
		CreatedAt:    project.CreatedAt,
		LastAccessed: project.LastAccessed,
		TotalClears:  clears,
	}
	for _, sess := range sessions {
		last := sess.LastAccessed
		info.AISessions = append(info.AISessions, models.AISessionInfo{
			AIName:     sess.AIName,
			SessionID:  sess.SessionID,
			Active:     !sess.Cleared,
			LastActive: &last,
		})
	}
	return info, nil
}

func (s *sessionService) ListProjects(ctx context.Context, limit int) ([]models.ProjectListing, error) {
	return s.projects.List(ctx, limit)
}

func (s *sessionService) CleanupInactiveSessions(ctx context.Context, olderThanHours int) (int64, error) {
	if olderThanHours <= 0 {
		return 0, fmt.Errorf("olderThanHours must be positive")
	}
	cutoff := time.Now().UTC().Add(-time.Duration(olderThanHours) * time.Hour)
	removed, err := s.sessions.DeleteInactive(ctx, cutoff)
	if err != nil {
		return removed, fmt.Errorf("cleanup inactive sessions: %w", err)
	}
	if removed > 0 {
		s.logger.Info("removed inactive sessions", zap.Int64("count", removed))
	}
	return removed, nil
}
