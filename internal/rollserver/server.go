package rollserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/cory-johannsen/hoard/internal/game/encounter"
	"github.com/cory-johannsen/hoard/internal/game/table"
	"github.com/cory-johannsen/hoard/internal/game/treasure"
	"github.com/cory-johannsen/hoard/internal/storage/postgres"
)

// Ledger records generated results. *postgres.HoardRepository satisfies it.
type Ledger interface {
	SaveHoard(ctx context.Context, h treasure.Hoard) (postgres.Record, error)
	SaveEncounter(ctx context.Context, env encounter.Environment, e encounter.Encounter) (postgres.Record, error)
}

// Server implements RollServiceServer.
//
// Generation is serialised so that a seeded source yields the same sequence
// of results as a single-threaded caller would.
type Server struct {
	mu        sync.Mutex
	generator *treasure.Generator
	resolver  *encounter.Resolver
	ledger    Ledger
	logger    *zap.Logger
}

// NewServer creates a roll service. ledger may be nil to disable recording.
//
// Precondition: generator, resolver, and logger must be non-nil.
func NewServer(generator *treasure.Generator, resolver *encounter.Resolver, ledger Ledger, logger *zap.Logger) *Server {
	return &Server{generator: generator, resolver: resolver, ledger: ledger, logger: logger}
}

type lootRequest struct {
	Type      string `json:"type"`
	DragonAge int    `json:"dragonAge"`
}

type appraiseRequest struct {
	Loot *treasure.Loot `json:"loot"`
}

type encounterRequest struct {
	Environment string `json:"environment"`
	Level       int    `json:"level"`
	Terrain     string `json:"terrain"`
	Time        string `json:"time"`
	Treasure    bool   `json:"treasure"`
}

// RollLoot rolls and appraises one hoard.
func (s *Server) RollLoot(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req lootRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	h, err := s.generator.Hoard(req.Type, req.DragonAge)
	s.mu.Unlock()
	if err != nil {
		return nil, s.statusError("RollLoot", err)
	}

	resp := map[string]any{"hoard": h, "value": h.Value()}
	if id, err := s.recordHoard(ctx, h); err != nil {
		return nil, err
	} else if id != "" {
		resp["recordId"] = id
	}
	return encode(resp)
}

// AppraiseGems expands the gem count of the given loot.
func (s *Server) AppraiseGems(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	loot, err := decodeLoot(in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	gems, updated, err := s.generator.AppraiseGems(loot)
	s.mu.Unlock()
	if err != nil {
		return nil, s.statusError("AppraiseGems", err)
	}
	return encode(map[string]any{"gems": nonNil(gems), "loot": updated})
}

// AppraiseJewels expands the jewel count of the given loot.
func (s *Server) AppraiseJewels(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	loot, err := decodeLoot(in)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	jewels, err := s.generator.AppraiseJewels(loot)
	s.mu.Unlock()
	if err != nil {
		return nil, s.statusError("AppraiseJewels", err)
	}
	return encode(map[string]any{"jewels": nonNil(jewels)})
}

// RollEncounter performs one encounter check. With treasure set, a matched
// monster's treasure type is rolled into a hoard as well.
func (s *Server) RollEncounter(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	var req encounterRequest
	if err := decode(in, &req); err != nil {
		return nil, err
	}
	env, d, err := encounterContext(req)
	if err != nil {
		return nil, s.statusError("RollEncounter", err)
	}

	s.mu.Lock()
	e, err := s.resolver.Encounter(env, d)
	var (
		h         treasure.Hoard
		withHoard bool
	)
	if err == nil && req.Treasure && e.Occurred() && e.Monster.Treasure != "" {
		h, err = s.generator.Hoard(e.Monster.Treasure, 0)
		withHoard = err == nil
	}
	s.mu.Unlock()
	if err != nil {
		return nil, s.statusError("RollEncounter", err)
	}

	resp := map[string]any{"encounter": e, "description": e.String()}
	if withHoard {
		resp["hoard"] = h
	}
	if s.ledger != nil {
		rec, err := s.ledger.SaveEncounter(ctx, env, e)
		if err != nil {
			return nil, s.statusError("RollEncounter", err)
		}
		resp["recordId"] = rec.ID.String()
	}
	return encode(resp)
}

func (s *Server) recordHoard(ctx context.Context, h treasure.Hoard) (string, error) {
	if s.ledger == nil {
		return "", nil
	}
	rec, err := s.ledger.SaveHoard(ctx, h)
	if err != nil {
		return "", s.statusError("RollLoot", err)
	}
	return rec.ID.String(), nil
}

func encounterContext(req encounterRequest) (encounter.Environment, encounter.Details, error) {
	env, err := encounter.ParseEnvironment(req.Environment)
	if err != nil {
		return "", encounter.Details{}, err
	}
	d := encounter.Details{Level: req.Level}
	switch env {
	case encounter.Wilderness:
		if d.SubEnvironment, err = encounter.ParseTerrain(req.Terrain); err != nil {
			return "", encounter.Details{}, err
		}
	case encounter.Urban:
		if d.Time, err = encounter.ParseTimeOfDay(req.Time); err != nil {
			return "", encounter.Details{}, err
		}
	}
	return env, d, nil
}

// statusError maps configuration errors to InvalidArgument and everything
// else to Internal.
func (s *Server) statusError(method string, err error) error {
	if errors.Is(err, table.ErrConfiguration) {
		s.logger.Info("rejected roll request", zap.String("method", method), zap.Error(err))
		return status.Error(codes.InvalidArgument, err.Error())
	}
	s.logger.Error("roll request failed", zap.String("method", method), zap.Error(err))
	return status.Error(codes.Internal, err.Error())
}

// MaxAppraisalCount bounds the gems and jewels one appraisal request may ask
// for. A dragon hoard, the largest row, yields at most 100 gems and 40 jewels.
const MaxAppraisalCount = 1000

func decodeLoot(in *structpb.Struct) (treasure.Loot, error) {
	var req appraiseRequest
	if err := decode(in, &req); err != nil {
		return treasure.Loot{}, err
	}
	if req.Loot == nil {
		return treasure.Loot{}, status.Error(codes.InvalidArgument, "request has no loot")
	}
	if req.Loot.Gems > MaxAppraisalCount || req.Loot.Jewels > MaxAppraisalCount {
		return treasure.Loot{}, status.Errorf(codes.InvalidArgument,
			"loot has %d gems and %d jewels; at most %d of each may be appraised",
			req.Loot.Gems, req.Loot.Jewels, MaxAppraisalCount)
	}
	return *req.Loot, nil
}

// decode converts a Struct into v through its JSON form.
func decode(in *structpb.Struct, v any) error {
	data, err := protojson.Marshal(in)
	if err != nil {
		return status.Errorf(codes.InvalidArgument, "encoding request: %v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return status.Errorf(codes.InvalidArgument, "decoding request: %v", err)
	}
	return nil
}

// encode converts v into a Struct through its JSON form.
func encode(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encoding response: %v", err)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, status.Errorf(codes.Internal, "converting response: %v", err)
	}
	return out, nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// Request builds a request Struct from any JSON-encodable value, such as a
// map of fields or a treasure.Loot wrapped in one.
func Request(v any) (*structpb.Struct, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(data, out); err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	return out, nil
}

// Decode unmarshals a response Struct into v through its JSON form.
func Decode(out *structpb.Struct, v any) error {
	data, err := protojson.Marshal(out)
	if err != nil {
		return fmt.Errorf("encoding response: %w", err)
	}
	return json.Unmarshal(data, v)
}
