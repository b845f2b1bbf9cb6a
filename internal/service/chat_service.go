package service

import (
	"context"
	"errors"
	"log"
	"os"
	"path/filepath"

	"github.com/Ines207/ARI/internal/config"
	"github.com/Ines207/ARI/internal/constant"
	"github.com/Ines207/ARI/internal/dto"
	"github.com/Ines207/ARI/internal/entity"
	"github.com/Ines207/ARI/internal/pkg/logger"
	"github.com/Ines207/ARI/internal/repository/contract"
	"github.com/Ines207/ARI/internal/repository/memory"
	"github.com/Ines207/ARI/pkg/gate"
	"github.com/Ines207/ARI/pkg/index"
	"github.com/Ines207/ARI/pkg/llm"
	"github.com/Ines207/ARI/pkg/phase"
	"github.com/Ines207/ARI/pkg/prompt"
	"github.com/Ines207/ARI/pkg/retry"
)

// IChatService is the conversation orchestrator: one call handles one user
// message start to finish.
type IChatService interface {
	SendMessage(ctx context.Context, username string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	LastTurnState(ctx context.Context, username, sessionID string) (*dto.TurnStateResponse, error)
	ClearTurnState(sessionID string)
}

type chatService struct {
	store          contract.UserStore
	sessionService ISessionService
	indexAdapter   *index.Adapter
	llmProvider    llm.LLMProvider
	stateRepo      *memory.SessionStateRepository
	retryCfg       config.RetryConfig
	retrievalCfg   config.RetrievalConfig
	logger         logger.ILogger
	llmLogger      *log.Logger
}

func NewChatService(
	store contract.UserStore,
	sessionService ISessionService,
	indexAdapter *index.Adapter,
	llmProvider llm.LLMProvider,
	stateRepo *memory.SessionStateRepository,
	retryCfg config.RetryConfig,
	retrievalCfg config.RetrievalConfig,
	log logger.ILogger,
) IChatService {
	return &chatService{
		store:          store,
		sessionService: sessionService,
		indexAdapter:   indexAdapter,
		llmProvider:    llmProvider,
		stateRepo:      stateRepo,
		retryCfg:       retryCfg,
		retrievalCfg:   retrievalCfg,
		logger:         log,
		llmLogger:      initLLMLogger(),
	}
}

func initLLMLogger() *log.Logger {
	logPath := filepath.Join(".", "logs", "llm_conversation.log")
	if err := os.MkdirAll(filepath.Dir(logPath), 0755); err != nil {
		log.Printf("Failed to create logs directory: %v", err)
	}
	file, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return log.New(os.Stdout, "[LLM] ", log.LstdFlags)
	}
	return log.New(file, "", log.LstdFlags)
}

// SendMessage runs the turn-state machine:
//  1. the user turn is appended and persisted before anything can fail;
//  2. phase is recomputed from the transcript, never read from a cache;
//  3. the retrieval gate decides the grounding path;
//  4. the prompt is assembled from persona, full memory and grounding;
//  5. generation goes through the bounded-retry wrapper, degrading to the
//     fixed fallback reply on exhaustion;
//  6. the agent turn is persisted unconditionally.
func (cs *chatService) SendMessage(ctx context.Context, username string, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	user, err := cs.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, mapStoreErr(err)
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = user.ActiveSessionID
	}

	var session *entity.Session
	if sessionID == "" {
		created, err := cs.sessionService.Create(ctx, username)
		if err != nil {
			return nil, err
		}
		sessionID = created.ID
		session = &entity.Session{ID: sessionID}
	} else {
		var ok bool
		session, ok = user.Sessions[sessionID]
		if !ok {
			return nil, ErrSessionNotFound
		}
	}

	// Snapshot the prior transcript before the new turn lands: it is both the
	// conversation memory for the prompt and the basis of the phase count.
	priorTranscript := make([]entity.Turn, len(session.Transcript))
	copy(priorTranscript, session.Transcript)
	priorUserTurns := session.UserTurnCount()

	userTurn := entity.Turn{Speaker: entity.SpeakerUser, Text: req.Message}
	if err := cs.sessionService.AppendTurn(ctx, username, sessionID, userTurn); err != nil {
		return nil, err
	}

	currentPhase := phase.Compute(priorUserTurns, req.Message)
	decision := gate.Decide(req.Message)

	cs.llmLogger.Printf("[TURN] user=%s session=%s phase=%s gate=%s userTurns=%d",
		username, sessionID, currentPhase, decision, priorUserTurns)

	var grounding []index.Result
	degraded := false
	if decision == gate.Ground {
		grounding, err = cs.indexAdapter.Query(ctx, req.Message, cs.retrievalCfg.TopK, cs.retrievalCfg.FetchK)
		if err != nil {
			// Retrieval exhausted its retries: degrade to the fallback reply
			// rather than answering ungrounded or not at all.
			cs.logger.Error("chat", "retrieval degraded", map[string]interface{}{
				"session": sessionID, "error": err.Error(),
			})
			degraded = true
		}
	}

	reply := constant.FallbackReply
	if !degraded {
		messages := prompt.NewBuilder(currentPhase, priorTranscript, grounding, req.Message).Build()

		reply, err = retry.Do(ctx, cs.retryCfg.MaxAttempts, cs.retryCfg.Delay,
			func(ctx context.Context) (string, error) {
				return cs.llmProvider.Chat(ctx, messages)
			})
		if err != nil {
			var exhausted *retry.ExhaustedError
			if !errors.As(err, &exhausted) {
				// Nothing below the retry wrapper should escape unclassified.
				cs.llmLogger.Printf("[WARN] unclassified generation error: %v", err)
			}
			cs.logger.Error("chat", "generation degraded", map[string]interface{}{
				"session": sessionID, "error": err.Error(),
			})
			reply = constant.FallbackReply
			degraded = true
		}
	}

	// The exchange is persisted whether the reply succeeded or fell back.
	agentTurn := entity.Turn{Speaker: entity.SpeakerAgent, Text: reply}
	if err := cs.sessionService.AppendTurn(ctx, username, sessionID, agentTurn); err != nil {
		return nil, err
	}

	sources := make([]string, 0, len(grounding))
	seen := make(map[string]bool)
	for _, res := range grounding {
		if !seen[res.Source] {
			sources = append(sources, res.Source)
			seen[res.Source] = true
		}
	}

	cs.stateRepo.Save(&memory.TurnState{
		SessionID: sessionID,
		Grounded:  decision == gate.Ground,
		Sources:   sources,
	})

	return &dto.SendMessageResponse{
		SessionID: sessionID,
		Reply:     reply,
		Phase:     string(currentPhase),
		Grounded:  decision == gate.Ground,
		Sources:   sources,
		Degraded:  degraded,
	}, nil
}

// LastTurnState reads back the cached state of a session's latest exchange.
// A session with no cached entry (no turn this process lifetime, or the entry
// expired) reads as ungrounded with no sources.
func (cs *chatService) LastTurnState(ctx context.Context, username, sessionID string) (*dto.TurnStateResponse, error) {
	user, err := cs.store.FindByUsername(ctx, username)
	if err != nil {
		return nil, mapStoreErr(err)
	}
	if _, ok := user.Sessions[sessionID]; !ok {
		return nil, ErrSessionNotFound
	}

	state, found := cs.stateRepo.Get(sessionID)
	if !found {
		return &dto.TurnStateResponse{SessionID: sessionID}, nil
	}
	return &dto.TurnStateResponse{
		SessionID: sessionID,
		Grounded:  state.Grounded,
		Sources:   state.Sources,
	}, nil
}

// ClearTurnState drops the cached state when its session goes away.
func (cs *chatService) ClearTurnState(sessionID string) {
	cs.stateRepo.Delete(sessionID)
}
