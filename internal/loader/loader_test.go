package loader

import (
	"context"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/portfolio-room/internal/material"
	"github.com/Faultbox/portfolio-room/internal/scene"
	"github.com/Faultbox/portfolio-room/internal/texture"
	"github.com/Faultbox/portfolio-room/pkg/formats"
	"github.com/Faultbox/portfolio-room/pkg/math"
)

const roomJSON = `{
  "asset": {"version": "2.0"},
  "scene": 0,
  "scenes": [{"nodes": [0, 5, 6]}],
  "nodes": [
    {"name": "Room", "children": [1, 2, 3, 4]},
    {"name": "Desk_Eka", "mesh": 0, "translation": [1, 0, 0]},
    {"name": "Monitor_Screen", "mesh": 1},
    {"name": "Projects_Raycaster_Eka", "mesh": 0},
    {"name": "Fan_Toka", "mesh": 0, "rotation": [0, 0, 0, 1]},
    {"name": "Lamp", "mesh": 0},
    {"name": "Window_Glass", "mesh": 2, "matrix": [1,0,0,0, 0,1,0,0, 0,0,1,0, 5,0,0,1]}
  ],
  "meshes": [
    {"primitives": [{"attributes": {"POSITION": 0, "TEXCOORD_0": 1}}]},
    {"primitives": [
      {"attributes": {"POSITION": 0}},
      {"attributes": {"POSITION": 0, "TEXCOORD_0": 1}}
    ]},
    {"primitives": [{"attributes": {"POSITION": 0}}]}
  ],
  "accessors": [
    {"componentType": 5126, "count": 8, "type": "VEC3", "min": [-1, -1, -1], "max": [1, 1, 1]},
    {"componentType": 5126, "count": 8, "type": "VEC2"}
  ]
}`

type lookupMap map[texture.ZoneKey]*texture.Handle

func (m lookupMap) Lookup(key texture.ZoneKey) (*texture.Handle, bool) {
	h, ok := m[key]
	return h, ok
}

func newTestLoader(t *testing.T, fsys fstest.MapFS) (*Loader, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zapcore.DebugLevel)

	zones := []texture.Zone{{Key: "Eka"}, {Key: "Toka"}}
	textures := lookupMap{
		"Eka":  {Key: "Eka"},
		"Toka": {Key: "Toka"},
	}
	markers := material.Markers{Glass: "Glass", Screen: "Screen", Interactive: "Raycaster", Fan: "Fan"}
	c := material.NewClassifier(markers, zones, textures, material.NewGlassMaterial(nil), texture.NewVideo("loop.mp4"))

	log := zap.New(core)
	return New(GLTFSource{FS: fsys, Log: log}, c, log), logs
}

func roomFS() fstest.MapFS {
	return fstest.MapFS{"models/room.gltf": {Data: []byte(roomJSON)}}
}

func findNode(g *scene.Graph, name string) *scene.Node {
	var found *scene.Node
	g.Traverse(func(n *scene.Node) {
		if found == nil && n.Name == name {
			found = n
		}
	})
	return found
}

func names(nodes []*scene.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.Name
	}
	return out
}

func TestBuildGraph(t *testing.T) {
	l, _ := newTestLoader(t, roomFS())
	g, err := l.source.LoadScene(context.Background(), "models/room.gltf")
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Desk_Eka", "Monitor_Screen_0", "Monitor_Screen_1",
		"Projects_Raycaster_Eka", "Fan_Toka", "Lamp", "Window_Glass",
	}, names(g.Meshes()))

	group := findNode(g, "Monitor_Screen")
	require.NotNil(t, group)
	assert.False(t, group.IsMesh)
	assert.Len(t, group.Children(), 2)
	assert.False(t, findNode(g, "Monitor_Screen_0").HasUV)
	assert.True(t, findNode(g, "Monitor_Screen_1").HasUV)

	desk := findNode(g, "Desk_Eka")
	assert.True(t, desk.Bounds.Valid)
	assert.Equal(t, math.Vec3{X: 1}, desk.Translation)
	wb := desk.WorldBounds()
	assert.InDelta(t, 0, wb.Min.X, 1e-5)
	assert.InDelta(t, 2, wb.Max.X, 1e-5)

	window := findNode(g, "Window_Glass")
	assert.Equal(t, math.Vec3{X: 5}, window.Translation)
	assert.InDelta(t, 1, window.Scale.Y, 1e-5)
}

func TestLoadClassifiesEveryMesh(t *testing.T) {
	l, logs := newTestLoader(t, roomFS())
	res, err := l.Load(context.Background(), "models/room.gltf")
	require.NoError(t, err)

	kinds := map[string]material.Kind{}
	for _, n := range res.Graph.Meshes() {
		require.NotNil(t, n.Binding, n.Name)
		kinds[n.Name] = n.Binding.Kind()
	}
	assert.Equal(t, map[string]material.Kind{
		"Desk_Eka":               material.KindStaticZone,
		"Monitor_Screen_0":       material.KindBlankScreen,
		"Monitor_Screen_1":       material.KindVideoScreen,
		"Projects_Raycaster_Eka": material.KindStaticZone,
		"Fan_Toka":               material.KindStaticZone,
		"Lamp":                   material.KindFallback,
		"Window_Glass":           material.KindGlass,
	}, kinds)

	assert.Equal(t, []string{"Projects_Raycaster_Eka"}, names(res.Interactive))
	assert.Equal(t, []string{"Fan_Toka"}, names(res.Animated))

	assert.Equal(t, 10, res.Stats.Nodes)
	assert.Equal(t, 7, res.Stats.Meshes)
	assert.Equal(t, 3, res.Stats.ByKind[material.KindStaticZone])
	assert.Equal(t, 3, res.Stats.Diagnostics)

	assert.Equal(t, 1, logs.FilterMessage("no classification found for mesh").Len())
	assert.Equal(t, 2, logs.FilterMessage("mesh is missing UVs").Len())
	assert.Equal(t, 1, logs.FilterMessage("room asset loaded").Len())
}

func TestLoadOnlyOnce(t *testing.T) {
	l, _ := newTestLoader(t, roomFS())
	_, err := l.Load(context.Background(), "models/room.gltf")
	require.NoError(t, err)

	_, err = l.Load(context.Background(), "models/room.gltf")
	assert.ErrorIs(t, err, ErrAlreadyLoaded)
}

func TestLoadMissingAsset(t *testing.T) {
	l, logs := newTestLoader(t, fstest.MapFS{})
	_, err := l.Load(context.Background(), "models/room.gltf")
	assert.Error(t, err)
	assert.Equal(t, 1, logs.FilterLevelExact(zapcore.ErrorLevel).Len())
}

func TestLoadCanceled(t *testing.T) {
	l, _ := newTestLoader(t, roomFS())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Load(ctx, "models/room.gltf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStartResolvesOnce(t *testing.T) {
	l, _ := newTestLoader(t, roomFS())
	p := l.Start(context.Background(), "models/room.gltf")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := p.Wait(ctx)
	require.NoError(t, err)
	require.True(t, p.Poll())

	again, err := p.Result()
	require.NoError(t, err)
	assert.Same(t, res, again)

	sc := scene.NewContext()
	require.NoError(t, res.Attach(sc))
	assert.True(t, sc.Ready())
	assert.ErrorIs(t, res.Attach(sc), scene.ErrAlreadyAttached)
}

func TestLoadFanAxis(t *testing.T) {
	l, _ := newTestLoader(t, roomFS())
	res, err := l.Load(context.Background(), "models/room.gltf")
	require.NoError(t, err)
	require.Len(t, res.Animated, 1)
	assert.Equal(t, math.Vec3{Y: 1}, res.Animated[0].SpinAxis, "zero axis keeps the default")

	l, _ = newTestLoader(t, roomFS())
	l.FanAxis = math.Vec3{X: 1}
	res, err = l.Load(context.Background(), "models/room.gltf")
	require.NoError(t, err)
	require.Len(t, res.Animated, 1)
	assert.Equal(t, math.Vec3{X: 1}, res.Animated[0].SpinAxis)
	assert.Equal(t, math.Vec3{Y: 1}, findNode(res.Graph, "Desk_Eka").SpinAxis)
}

func TestLoadRejectsSharedRoot(t *testing.T) {
	doc := `{
  "asset": {"version": "2.0"},
  "scenes": [{"nodes": [0, 1]}],
  "nodes": [
    {"name": "Room", "children": [1]},
    {"name": "Fan_Eka_Raycaster", "mesh": 0}
  ],
  "meshes": [{"primitives": [{"attributes": {"TEXCOORD_0": 0}}]}],
  "accessors": [{"componentType": 5126, "count": 4, "type": "VEC2"}]
}`
	l, _ := newTestLoader(t, fstest.MapFS{"models/room.gltf": {Data: []byte(doc)}})
	_, err := l.Load(context.Background(), "models/room.gltf")
	assert.ErrorIs(t, err, formats.ErrInvalidNodeIndex)
}

func TestBuildGraphLogsCompressedPrimitives(t *testing.T) {
	doc := `{
  "asset": {"version": "2.0"},
  "extensionsRequired": ["KHR_draco_mesh_compression"],
  "nodes": [{"name": "Desk_Eka", "mesh": 0}],
  "meshes": [{"primitives": [{
    "attributes": {"POSITION": 0},
    "extensions": {"KHR_draco_mesh_compression": {"bufferView": 0, "attributes": {"POSITION": 0}}}
  }]}],
  "accessors": [{"componentType": 5126, "count": 8, "type": "VEC3", "min": [0, 0, 0], "max": [1, 1, 1]}]
}`
	l, logs := newTestLoader(t, fstest.MapFS{"desk.gltf": {Data: []byte(doc)}})
	g, err := l.source.LoadScene(context.Background(), "desk.gltf")
	require.NoError(t, err)

	desk := findNode(g, "Desk_Eka")
	require.NotNil(t, desk)
	assert.True(t, desk.Bounds.Valid)

	entries := logs.FilterMessage("mesh primitive is Draco compressed, bounds taken from accessor").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "Desk_Eka", entries[0].ContextMap()["mesh"])
}
