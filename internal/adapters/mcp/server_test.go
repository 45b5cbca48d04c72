package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aretw0/wordgraph"
	"github.com/aretw0/wordgraph/internal/adapters/memory"
	"github.com/aretw0/wordgraph/pkg/domain"
	"github.com/aretw0/wordgraph/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const startrek = "To explore strange new worlds,\nTo seek out new life and new civilizations."

func newTestServer(t *testing.T, text string) (*Server, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	eng := wordgraph.NewFromText(text, wordgraph.WithSeed(5), wordgraph.WithTraceStore(store))
	mgr := session.NewManager(func(id string) session.Walker { return eng.NewWalker(id) }, store)
	return NewServer(eng, mgr), store
}

func call(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Name: name, Arguments: args}}
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return tc.Text
}

func errorOf(t *testing.T, res *mcp.CallToolResult) toolErrorBody {
	t.Helper()
	require.True(t, res.IsError)
	var body toolErrorBody
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &body))
	return body
}

func TestBridgeWordsTool(t *testing.T) {
	s, _ := newTestServer(t, startrek)
	ctx := context.Background()

	res, err := s.handleBridgeWords(ctx, call("bridge_words", map[string]any{"word1": "new", "word2": "and"}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "The bridge words from new to and are: life.", textOf(t, res))

	res, err = s.handleBridgeWords(ctx, call("bridge_words", map[string]any{"word1": "to", "word2": "new"}))
	require.NoError(t, err)
	assert.Equal(t, "No bridge words from to to new!", textOf(t, res))

	res, err = s.handleBridgeWords(ctx, call("bridge_words", map[string]any{"word1": "live", "word2": "to"}))
	require.NoError(t, err)
	body := errorOf(t, res)
	assert.Equal(t, domain.KindNodeNotFound, body.Kind)
	assert.Equal(t, "No live or to in the graph!", body.Error)
}

func TestGenerateTextTool(t *testing.T) {
	s, _ := newTestServer(t, startrek)

	res, err := s.handleGenerateText(context.Background(), call("generate_text", map[string]any{"text": "new and"}))
	require.NoError(t, err)
	assert.Equal(t, "new life and", textOf(t, res))

	res, err = s.handleGenerateText(context.Background(), call("generate_text", map[string]any{"text": "bad \xff"}))
	require.NoError(t, err)
	assert.Equal(t, domain.KindInvalidInput, errorOf(t, res).Kind)
}

func TestShortestPathsTool(t *testing.T) {
	s, _ := newTestServer(t, startrek)
	ctx := context.Background()

	res, err := s.handleShortestPaths(ctx, call("shortest_paths", map[string]any{"word1": "new", "word2": "life"}))
	require.NoError(t, err)
	var set domain.PathSet
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &set))
	assert.Equal(t, domain.PathsFound, set.Outcome)
	assert.Equal(t, []domain.Path{{Nodes: []string{"new", "life"}, Length: 1}}, set.Paths)

	res, err = s.handleShortestPaths(ctx, call("shortest_paths", map[string]any{"word1": "new"}))
	require.NoError(t, err)
	var all map[string]domain.PathSet
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &all))
	assert.Len(t, all, 9)

	res, err = s.handleShortestPaths(ctx, call("shortest_paths", map[string]any{"word1": "hello", "word2": "new"}))
	require.NoError(t, err)
	assert.Equal(t, domain.KindNodeNotFound, errorOf(t, res).Kind)
}

func TestWalkTools(t *testing.T) {
	s, store := newTestServer(t, "a b a")
	ctx := context.Background()

	res, err := s.handleWalkStep(ctx, call("walk_step", map[string]any{"session_id": "w1"}))
	require.NoError(t, err)
	var step domain.StepResult
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &step))
	assert.Equal(t, domain.StepAdvanced, step.Kind)

	res, err = s.handleWalkStep(ctx, call("walk_step", map[string]any{"session_id": "w1", "run": true}))
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &step))
	assert.Equal(t, domain.StepCycleDetected, step.Kind)

	trace, err := store.Load(ctx, "w1")
	require.NoError(t, err)
	assert.Equal(t, domain.Trace(step.Path), trace)

	res, err = s.handleWalkReset(ctx, call("walk_reset", map[string]any{"session_id": "w1"}))
	require.NoError(t, err)
	assert.Equal(t, "Walk w1 reset.", textOf(t, res))
	assert.Equal(t, domain.WalkIdle, s.sessions.State("w1").Status)
}

func TestWalkTool_DefaultSessionAndEmptyGraph(t *testing.T) {
	s, _ := newTestServer(t, "")

	res, err := s.handleWalkStep(context.Background(), call("walk_step", nil))
	require.NoError(t, err)
	body := errorOf(t, res)
	assert.Equal(t, domain.KindEmptyGraph, body.Kind)
	assert.Contains(t, body.Error, domain.ErrEmptyGraph.Error())
	assert.Equal(t, domain.WalkIdle, s.sessions.State(wordgraph.DefaultSessionID).Status)
}

func TestWalkTools_InvalidSessionID(t *testing.T) {
	s, store := newTestServer(t, "a b a")
	ctx := context.Background()

	for _, id := range []string{"../x", "a..b", "a/b"} {
		res, err := s.handleWalkStep(ctx, call("walk_step", map[string]any{"session_id": id, "run": true}))
		require.NoError(t, err)
		assert.Equal(t, domain.KindInvalidInput, errorOf(t, res).Kind, id)

		res, err = s.handleWalkReset(ctx, call("walk_reset", map[string]any{"session_id": id}))
		require.NoError(t, err)
		assert.Equal(t, domain.KindInvalidInput, errorOf(t, res).Kind, id)
	}

	assert.Empty(t, s.sessions.Active())
	ids, err := store.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, ids)
}

type failingStore struct{ *memory.Store }

func (*failingStore) Save(context.Context, string, domain.Trace) error {
	return errors.New("disk full")
}

func TestWalkTool_TraceWriteFailure(t *testing.T) {
	store := &failingStore{Store: memory.NewStore()}
	eng := wordgraph.NewFromText("a b a", wordgraph.WithSeed(5), wordgraph.WithTraceStore(store))
	mgr := session.NewManager(func(id string) session.Walker { return eng.NewWalker(id) }, store)
	s := NewServer(eng, mgr)

	res, err := s.handleWalkStep(context.Background(), call("walk_step", map[string]any{"run": true}))
	require.NoError(t, err)
	body := errorOf(t, res)
	assert.Equal(t, domain.KindIOFailure, body.Kind)
	require.NotNil(t, body.Step)
	assert.Equal(t, domain.StepCycleDetected, body.Step.Kind)
}

func TestGraphResource(t *testing.T) {
	s, _ := newTestServer(t, "a b a")

	contents, err := s.readGraph(context.Background(), mcp.ReadResourceRequest{})
	require.NoError(t, err)
	require.Len(t, contents, 1)

	text, ok := contents[0].(mcp.TextResourceContents)
	require.True(t, ok)
	assert.Equal(t, GraphURI, text.URI)
	assert.Equal(t, "digraph G {\n    \"a\" -> \"b\" [label=\"1\"];\n    \"b\" -> \"a\" [label=\"1\"];\n}\n", text.Text)
}
