package codec

import (
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/marchelbling/osg/types"
)

func TestPredictParallelogram(t *testing.T) {
	values := []types.Vec3{
		{0, 0, 0},
		{1, 0, 0},
		{1, 1, 0},
		{0, 1, 0},
		{0, 0, 1},
	}
	strips := []Strip{{0, 1, 2, 3, 4}}

	out, err := Predict(values, strips)
	if err != nil {
		t.Fatal(err)
	}

	expOut := []types.Vec3{
		{0, 0, 0},
		{1, 0, 0},
		{1, 1, 0},
		// prediction: v0 + v2 - v1 = (0, 1, 0)
		{0, 0, 0},
		// prediction: v1 + v3 - v2 = (0, 0, 0)
		{0, 0, 1},
	}
	if !reflect.DeepEqual(out, expOut) {
		t.Fatalf("expected predicted values to be %v; got %v", expOut, out)
	}

	if values[3] != (types.Vec3{0, 1, 0}) {
		t.Fatal("expected Predict to leave its input untouched")
	}
}

func TestPredictShortStripsPassThrough(t *testing.T) {
	values := []types.Vec2{{1, 2}, {3, 4}, {5, 6}, {7, 8}}
	strips := []Strip{{0, 1}, {1, 2, 3}}

	out, err := Predict(values, strips)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(out, values) {
		t.Fatalf("expected strips with less than 4 vertices to pass through; got %v", out)
	}
}

func TestPredictUnreferencedVerticesPassThrough(t *testing.T) {
	values := []types.Vec2{{1, 1}, {2, 2}, {3, 3}, {4, 5}, {9, 9}}
	out, err := Predict(values, []Strip{{0, 1, 2, 3}})
	if err != nil {
		t.Fatal(err)
	}
	if out[4] != values[4] {
		t.Fatalf("expected unreferenced vertex to pass through; got %v", out[4])
	}
	if out[3] != (types.Vec2{0, 1}) {
		t.Fatalf("expected predicted delta (0, 1); got %v", out[3])
	}
}

func TestPredictSharedVertex(t *testing.T) {
	values := []types.Vec3{
		{0, 0, 0},
		{1, 0, 0},
		{0, 1, 0},
		{1, 1, 0},
		{2, 0, 3},
		{5, 5, 5},
		{7, 1, 2},
	}

	// vertex 3 is predicted in the first strip and re-visited in the second
	strips := []Strip{
		{0, 1, 2, 3},
		{4, 5, 6, 3},
	}

	out, err := Predict(values, strips)
	if err != nil {
		t.Fatal(err)
	}

	alone, err := Predict(values, strips[:1])
	if err != nil {
		t.Fatal(err)
	}
	if out[3] != alone[3] {
		t.Fatalf("expected shared vertex to keep the value from its first encounter %v; got %v", alone[3], out[3])
	}

	back, err := Unpredict(out, strips)
	if err != nil {
		t.Fatal(err)
	}
	assertVec3ListsEqual(t, values, back, 1e-6)
}

func TestPredictInvertibility(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for iteration := 0; iteration < 50; iteration++ {
		numVertices := 3 + rng.Intn(60)
		values := make([]types.Vec3, numVertices)
		for i := range values {
			values[i] = types.Vec3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, rng.Float32()*2 - 1}
		}

		// random strips that share vertices
		strips := make([]Strip, 1+rng.Intn(5))
		for i := range strips {
			strip := make(Strip, 3+rng.Intn(20))
			for j := range strip {
				strip[j] = uint32(rng.Intn(numVertices))
			}
			strips[i] = strip
		}

		predicted, err := Predict(values, strips)
		if err != nil {
			t.Fatal(err)
		}
		back, err := Unpredict(predicted, strips)
		if err != nil {
			t.Fatal(err)
		}
		assertVec3ListsEqual(t, values, back, 1e-4)
	}
}

func TestPredictStripIndexOutOfRange(t *testing.T) {
	values := []types.Vec2{{0, 0}, {1, 1}}
	_, err := Predict(values, []Strip{{0, 1, 2}})
	if !errors.Is(err, ErrStripIndexOutOfRange) {
		t.Fatalf("expected to get ErrStripIndexOutOfRange; got %v", err)
	}

	_, err = Unpredict(values, []Strip{{5}})
	if !errors.Is(err, ErrStripIndexOutOfRange) {
		t.Fatalf("expected to get ErrStripIndexOutOfRange; got %v", err)
	}
}

func assertVec3ListsEqual(t *testing.T, exp, got []types.Vec3, tolerance float32) {
	t.Helper()
	if len(exp) != len(got) {
		t.Fatalf("expected %d vectors; got %d", len(exp), len(got))
	}
	for i := range exp {
		if !types.ApproxEqual(exp[i], got[i], tolerance) {
			t.Fatalf("expected vector %d to be %v; got %v", i, exp[i], got[i])
		}
	}
}
