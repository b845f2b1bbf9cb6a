package service

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Ines207/ARI/internal/constant"
	"github.com/Ines207/ARI/internal/dto"
	"github.com/Ines207/ARI/internal/entity"
	"github.com/Ines207/ARI/internal/repository/contract"

	"github.com/google/uuid"
)

type ISessionService interface {
	Create(ctx context.Context, username string) (*dto.CreateSessionResponse, error)
	List(ctx context.Context, username string) ([]*dto.SessionSummary, error)
	LoadTranscript(ctx context.Context, username, sessionID string) ([]dto.TurnDTO, error)
	SetActive(ctx context.Context, username, sessionID string) error
	Delete(ctx context.Context, username, sessionID string) error
	AppendTurn(ctx context.Context, username, sessionID string, turn entity.Turn) error
}

type sessionService struct {
	store contract.UserStore
}

func NewSessionService(store contract.UserStore) ISessionService {
	return &sessionService{store: store}
}

// Create starts a new session and makes it the active one.
func (s *sessionService) Create(ctx context.Context, username string) (*dto.CreateSessionResponse, error) {
	session := &entity.Session{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}

	err := s.store.Update(ctx, username, func(user *entity.User) error {
		if user.Sessions == nil {
			user.Sessions = make(map[string]*entity.Session)
		}
		user.Sessions[session.ID] = session
		user.ActiveSessionID = session.ID
		return nil
	})
	if err != nil {
		return nil, mapStoreErr(err)
	}

	return &dto.CreateSessionResponse{ID: session.ID}, nil
}

// List returns session summaries ordered by creation time, newest first.
// Ties keep a stable order by id within one process run.
func (s *sessionService) List(ctx context.Context, username string) ([]*dto.SessionSummary, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	summaries := make([]*dto.SessionSummary, 0, len(user.Sessions))
	for _, session := range user.Sessions {
		summaries = append(summaries, &dto.SessionSummary{
			ID:        session.ID,
			CreatedAt: session.CreatedAt,
			Preview:   preview(session),
			Active:    session.ID == user.ActiveSessionID,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		if summaries[i].CreatedAt.Equal(summaries[j].CreatedAt) {
			return summaries[i].ID < summaries[j].ID
		}
		return summaries[i].CreatedAt.After(summaries[j].CreatedAt)
	})

	return summaries, nil
}

func (s *sessionService) LoadTranscript(ctx context.Context, username, sessionID string) ([]dto.TurnDTO, error) {
	user, err := s.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	session, ok := user.Sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}

	turns := make([]dto.TurnDTO, 0, len(session.Transcript))
	for _, turn := range session.Transcript {
		turns = append(turns, dto.TurnDTO{
			Speaker: string(turn.Speaker),
			Text:    turn.Text,
		})
	}
	return turns, nil
}

func (s *sessionService) SetActive(ctx context.Context, username, sessionID string) error {
	err := s.store.Update(ctx, username, func(user *entity.User) error {
		if _, ok := user.Sessions[sessionID]; !ok {
			return ErrSessionNotFound
		}
		user.ActiveSessionID = sessionID
		return nil
	})
	return mapStoreErr(err)
}

// Delete removes a session. The active pointer is cleared only when it
// referenced the deleted session; an unknown id leaves the store untouched.
func (s *sessionService) Delete(ctx context.Context, username, sessionID string) error {
	err := s.store.Update(ctx, username, func(user *entity.User) error {
		if _, ok := user.Sessions[sessionID]; !ok {
			return ErrSessionNotFound
		}
		delete(user.Sessions, sessionID)
		if user.ActiveSessionID == sessionID {
			user.ActiveSessionID = ""
		}
		return nil
	})
	return mapStoreErr(err)
}

func (s *sessionService) AppendTurn(ctx context.Context, username, sessionID string, turn entity.Turn) error {
	err := s.store.Update(ctx, username, func(user *entity.User) error {
		session, ok := user.Sessions[sessionID]
		if !ok {
			return ErrSessionNotFound
		}
		session.Transcript = append(session.Transcript, turn)
		return nil
	})
	return mapStoreErr(err)
}

func preview(session *entity.Session) string {
	first := session.FirstUserTurn()
	if first == "" {
		return constant.EmptySessionPreview
	}
	runes := []rune(first)
	if len(runes) > constant.SessionPreviewLength {
		return string(runes[:constant.SessionPreviewLength]) + "..."
	}
	return first
}

func mapStoreErr(err error) error {
	if errors.Is(err, contract.ErrNotFound) {
		return ErrUnknownUser
	}
	return err
}
