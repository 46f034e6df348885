package dataset_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/dcplan/dataset"
	"github.com/katalvlaran/dcplan/facility"
	"github.com/katalvlaran/dcplan/network"
)

const sampleText = `2	clients
2	centers
A,1,10
B, 2 ,5

# clients
c0,3
c1,2
`

const sampleRoutes = `# from,to,cost
A,c0,1
A,x,2
x,c1,2
B,c0,2
B,c1,1
`

const sampleYAML = `centers:
  - {id: A, unit_cost: 1, fixed_cost: 10}
  - {id: B, unit_cost: 2, fixed_cost: 5}
clients:
  - {id: c0, volume: 3}
  - {id: c1, volume: 2}
routes:
  - {from: A, to: c0, cost: 1}
  - {from: A, to: x, cost: 2}
  - {from: x, to: c1, cost: 2}
  - {from: B, to: c0, cost: 2}
  - {from: B, to: c1, cost: 1}
`

func TestReadText(t *testing.T) {
	in, err := dataset.ReadText(strings.NewReader(sampleText))
	require.NoError(t, err)
	require.Equal(t, 2, in.NumCenters())
	require.Equal(t, 2, in.NumClients())
	assert.Equal(t, facility.Center{ID: "B", UnitCost: 2, FixedCost: 5}, in.Center(1))
	assert.Equal(t, facility.Client{ID: "c0", Volume: 3}, in.Client(0))
}

func TestReadText_Errors(t *testing.T) {
	cases := map[string]struct {
		input string
		msg   string
	}{
		"empty":          {"", "client count"},
		"bad count":      {"x\n1\n", `client count "x"`},
		"negative count": {"1\n-2\n", "center count"},
		"short center":   {"1\n1\nA,1\nc0,1\n", "line 3: center: want 3 fields"},
		"bad cost":       {"1\n1\nA,one,2\nc0,1\n", `unit cost "one"`},
		"truncated":      {"2\n1\nA,1,2\nc0,1\n", "want client"},
		"bad volume":     {"1\n1\nA,1,2\nc0,0\n", "volume"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := dataset.ReadText(strings.NewReader(tc.input))
			require.ErrorIs(t, err, dataset.ErrFormat)
			require.ErrorContains(t, err, tc.msg)
		})
	}
}

func TestReadText_InstanceValidation(t *testing.T) {
	_, err := dataset.ReadText(strings.NewReader("1\n2\nA,1,2\nA,1,2\nc0,1\n"))
	require.ErrorIs(t, err, dataset.ErrFormat)
	require.ErrorIs(t, err, facility.ErrInvalidInstance)
}

func TestRead_SharedClientCenterID(t *testing.T) {
	_, err := dataset.ReadText(strings.NewReader("1\tx\n1\tx\n0,1,10\n0,3\n"))
	require.ErrorIs(t, err, dataset.ErrFormat)
	require.ErrorContains(t, err, `client #0 and center #0 share id "0"`)

	doc := "centers:\n  - {id: A, unit_cost: 1, fixed_cost: 1}\n  - {id: B, unit_cost: 1, fixed_cost: 1}\n" +
		"clients:\n  - {id: c0, volume: 1}\n  - {id: B, volume: 2}\n" +
		"routes:\n  - {from: A, to: B, cost: 1}\n"
	_, err = dataset.ReadYAML(strings.NewReader(doc))
	require.ErrorIs(t, err, dataset.ErrFormat)
	require.ErrorContains(t, err, `client #1 and center #1 share id "B"`)
}

func TestWriteText_RoundTrip(t *testing.T) {
	in, err := dataset.ReadText(strings.NewReader(sampleText))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dataset.WriteText(&buf, in))
	back, err := dataset.ReadText(&buf)
	require.NoError(t, err)
	require.Equal(t, in.Centers(), back.Centers())
	require.Equal(t, in.Clients(), back.Clients())
}

func TestReadRoutes(t *testing.T) {
	net, err := dataset.ReadRoutes(strings.NewReader(sampleRoutes))
	require.NoError(t, err)
	require.Equal(t, 5, net.RouteCount())
	require.Equal(t, []string{"A", "B", "c0", "c1", "x"}, net.Nodes())

	_, err = dataset.ReadRoutes(strings.NewReader("A,B\n"))
	require.ErrorIs(t, err, dataset.ErrFormat)

	_, err = dataset.ReadRoutes(strings.NewReader("A,B,1\nA,A,1\n"))
	require.ErrorIs(t, err, dataset.ErrFormat)
	require.ErrorIs(t, err, network.ErrSelfRoute)
	require.ErrorContains(t, err, "line 2")

	_, err = dataset.ReadRoutes(strings.NewReader("A,B,-4\n"))
	require.ErrorIs(t, err, network.ErrNegativeCost)
}

func TestDataset_CostMatrix(t *testing.T) {
	in, err := dataset.ReadText(strings.NewReader(sampleText))
	require.NoError(t, err)
	net, err := dataset.ReadRoutes(strings.NewReader(sampleRoutes))
	require.NoError(t, err)

	ds := dataset.Dataset{Instance: in, Network: net}
	m, err := ds.CostMatrix(context.Background())
	require.NoError(t, err)
	require.Equal(t, facility.CostMatrix{{1, 4}, {2, 1}}, m)

	k, err := net.Kind("A")
	require.NoError(t, err)
	require.Equal(t, network.CenterNode, k)

	_, err = dataset.Dataset{Instance: in}.CostMatrix(context.Background())
	require.ErrorIs(t, err, dataset.ErrNoNetwork)
}

func TestDataset_CostMatrixIsolatedClient(t *testing.T) {
	in, err := facility.NewInstance(
		[]facility.Center{{ID: "A", UnitCost: 1, FixedCost: 1}},
		[]facility.Client{{ID: "c0", Volume: 1}, {ID: "lonely", Volume: 1}},
	)
	require.NoError(t, err)
	net, err := dataset.ReadRoutes(strings.NewReader("A,c0,3\n"))
	require.NoError(t, err)

	m, err := dataset.Dataset{Instance: in, Network: net}.CostMatrix(context.Background())
	require.NoError(t, err)
	require.Equal(t, facility.CostMatrix{{3, facility.Unreachable}}, m)
}

func TestBuildNetwork_KindConflict(t *testing.T) {
	in, err := facility.NewInstance(
		[]facility.Center{{ID: "X", UnitCost: 1, FixedCost: 1}},
		[]facility.Client{{ID: "c0", Volume: 1}},
	)
	require.NoError(t, err)
	net := network.NewNetwork()
	require.NoError(t, net.AddNode("X", network.ClientNode))

	require.ErrorIs(t, dataset.BuildNetwork(in, net), network.ErrKindConflict)
}

func TestReadYAML(t *testing.T) {
	ds, err := dataset.ReadYAML(strings.NewReader(sampleYAML))
	require.NoError(t, err)
	require.Equal(t, 2, ds.Instance.NumCenters())
	require.NotNil(t, ds.Network)
	require.Equal(t, 5, ds.Network.RouteCount())

	m, err := ds.CostMatrix(context.Background())
	require.NoError(t, err)
	require.Equal(t, facility.CostMatrix{{1, 4}, {2, 1}}, m)
}

func TestReadYAML_Errors(t *testing.T) {
	_, err := dataset.ReadYAML(strings.NewReader(""))
	require.ErrorIs(t, err, dataset.ErrFormat)

	_, err = dataset.ReadYAML(strings.NewReader("centers: []\nclients: []\nextra: 1\n"))
	require.ErrorIs(t, err, dataset.ErrFormat)

	_, err = dataset.ReadYAML(strings.NewReader("centers: []\nclients: []\n"))
	require.ErrorIs(t, err, facility.ErrInvalidInstance)

	bad := sampleYAML + "  - {from: A, to: A, cost: 1}\n"
	_, err = dataset.ReadYAML(strings.NewReader(bad))
	require.ErrorIs(t, err, network.ErrSelfRoute)
	require.ErrorContains(t, err, "routes[5]")
}

func TestYAML_RoundTrip(t *testing.T) {
	ds, err := dataset.Generate(dataset.GenerateConfig{
		Clients: 4, Centers: 2, Junctions: 2, ExtraRoutes: 3, Seed: 9,
		MaxVolume: 10, MaxUnitCost: 3, MaxFixedCost: 50, MaxRouteCost: 9,
	})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, dataset.WriteYAML(&buf, ds))
	back, err := dataset.ReadYAML(&buf)
	require.NoError(t, err)

	require.Equal(t, ds.Instance.Centers(), back.Instance.Centers())
	require.Equal(t, ds.Instance.Clients(), back.Instance.Clients())
	require.Equal(t, ds.Network.RouteCount(), back.Network.RouteCount())

	want, err := ds.CostMatrix(context.Background())
	require.NoError(t, err)
	got, err := back.CostMatrix(context.Background())
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		p := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
		return p
	}

	ds, err := dataset.LoadFile(write("inst.txt", sampleText))
	require.NoError(t, err)
	require.Nil(t, ds.Network)
	require.Equal(t, 2, ds.Instance.NumClients())

	ds, err = dataset.LoadFile(write("inst.YML", sampleYAML))
	require.NoError(t, err)
	require.NotNil(t, ds.Network)

	_, err = dataset.LoadFile(write("inst.json", "{}"))
	require.ErrorIs(t, err, dataset.ErrUnknownFormat)

	_, err = dataset.LoadFile(filepath.Join(dir, "missing.txt"))
	require.ErrorIs(t, err, os.ErrNotExist)

	net, err := dataset.LoadRoutes(write("routes.csv", sampleRoutes))
	require.NoError(t, err)
	require.Equal(t, 5, net.RouteCount())

	_, err = dataset.LoadRoutes(write("bad.csv", "A;B;1\n"))
	require.ErrorIs(t, err, dataset.ErrFormat)
	require.ErrorContains(t, err, "bad.csv")
}

func TestGenerate_Deterministic(t *testing.T) {
	cfg := dataset.DefaultGenerateConfig()
	cfg.Clients, cfg.Centers = 12, 4

	a, err := dataset.Generate(cfg)
	require.NoError(t, err)
	b, err := dataset.Generate(cfg)
	require.NoError(t, err)

	require.Equal(t, a.Instance.Centers(), b.Instance.Centers())
	require.Equal(t, a.Instance.Clients(), b.Instance.Clients())
	require.Equal(t, a.Network.Routes(), b.Network.Routes())
	require.Equal(t, cfg.Clients+cfg.Centers+cfg.Junctions-1+cfg.ExtraRoutes, a.Network.RouteCount())

	cfg.Seed = 0
	z, err := dataset.Generate(cfg)
	require.NoError(t, err)
	require.Equal(t, a.Instance.Clients(), z.Instance.Clients(), "seed 0 falls back to the default seed")
}

func TestGenerate_Connected(t *testing.T) {
	cfg := dataset.DefaultGenerateConfig()
	cfg.Clients, cfg.Centers, cfg.ExtraRoutes, cfg.Seed = 10, 3, 0, 77

	ds, err := dataset.Generate(cfg)
	require.NoError(t, err)
	m, err := ds.CostMatrix(context.Background())
	require.NoError(t, err)
	for j := range m {
		for i := range m[j] {
			require.NotEqual(t, facility.Unreachable, m[j][i], "center %d client %d", j, i)
		}
	}
}

func TestGenerate_Validation(t *testing.T) {
	base := dataset.DefaultGenerateConfig()
	mutate := []func(*dataset.GenerateConfig){
		func(c *dataset.GenerateConfig) { c.Clients = 0 },
		func(c *dataset.GenerateConfig) { c.Centers = 0 },
		func(c *dataset.GenerateConfig) { c.Junctions = -1 },
		func(c *dataset.GenerateConfig) { c.ExtraRoutes = -1 },
		func(c *dataset.GenerateConfig) { c.MaxRouteCost = 0 },
	}
	for k, m := range mutate {
		cfg := base
		m(&cfg)
		_, err := dataset.Generate(cfg)
		require.ErrorIs(t, err, dataset.ErrGenerateConfig, "case %d", k)
	}
}
