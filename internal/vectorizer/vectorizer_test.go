package vectorizer

import (
	"math"
	"reflect"
	"testing"
)

func TestFitVocabulary(t *testing.T) {
	model, err := Fit([]string{
		"python developer",
		"python data analyst",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{"analyst", "data", "developer", "python"}
	if got := model.Vocabulary(); !reflect.DeepEqual(got, want) {
		t.Fatalf("vocabulary = %v, want %v", got, want)
	}
	if model.Len() != 2 {
		t.Fatalf("expected 2 vectors, got %d", model.Len())
	}
}

func TestFitEmptyCorpus(t *testing.T) {
	if _, err := Fit(nil); err != ErrNoDocuments {
		t.Fatalf("expected ErrNoDocuments, got %v", err)
	}
}

func TestFitWeights(t *testing.T) {
	// Two documents: "go" appears in both, "rust" only in the second.
	model, err := Fit([]string{"go", "go rust"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	idx := map[string]int{}
	for i, term := range model.Vocabulary() {
		idx[term] = i
	}

	// doc 1: tf(rust) = 1/2, idf(rust) = log(2/(1+1)) = 0.
	vec := model.Vector(1)
	if got := vec[idx["rust"]]; math.Abs(got-0) > 1e-12 {
		t.Fatalf("rust weight = %v, want 0", got)
	}
	// "go" appears in both docs: idf = log(2/3) < 0, tf = 1/2 in doc 1.
	wantGo := 0.5 * math.Log(2.0/3.0)
	if got := vec[idx["go"]]; math.Abs(got-wantGo) > 1e-12 {
		t.Fatalf("go weight = %v, want %v", got, wantGo)
	}
}

func TestFitSingleDocumentDegradesToOverlap(t *testing.T) {
	// One-document corpus: idf = log(1/2) for every present term, so the
	// vector is uniformly scaled and cosine against itself is still 1.
	model, err := Fit([]string{"backend golang kubernetes"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	v := model.Vector(0)
	if v.IsZero() {
		t.Fatalf("expected non-zero vector for single-document corpus")
	}
	if sim := Cosine(v, v); math.Abs(sim-1.0) > 1e-9 {
		t.Fatalf("self similarity = %v, want 1.0", sim)
	}
}

func TestCosineSymmetricAndBounded(t *testing.T) {
	model, err := Fit([]string{
		"python sql pandas reporting",
		"python machine learning tensorflow",
		"accounting audit tax",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < model.Len(); i++ {
		for j := 0; j < model.Len(); j++ {
			ab := Cosine(model.Vector(i), model.Vector(j))
			ba := Cosine(model.Vector(j), model.Vector(i))
			if ab != ba {
				t.Fatalf("cosine not symmetric: sim(%d,%d)=%v sim(%d,%d)=%v", i, j, ab, j, i, ba)
			}
			if ab < 0 || ab > 1 {
				t.Fatalf("cosine out of bounds: sim(%d,%d)=%v", i, j, ab)
			}
		}
	}
}

func TestCosineZeroVector(t *testing.T) {
	model, err := Fit([]string{"golang developer", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := model.Vector(1)
	if !empty.IsZero() {
		t.Fatalf("expected zero vector for empty document")
	}
	if sim := Cosine(model.Vector(0), empty); sim != 0 {
		t.Fatalf("expected 0.0 for zero-magnitude vector, got %v", sim)
	}
}

func TestMagnitude(t *testing.T) {
	v := DocumentVector{3, 4}
	if got := v.Magnitude(); got != 5 {
		t.Fatalf("Magnitude = %v, want 5", got)
	}

	var zero DocumentVector = DocumentVector{0, 0, 0}
	if got := zero.Magnitude(); got != 0 {
		t.Fatalf("Magnitude of zero vector = %v, want 0", got)
	}
}

func TestVectorsShareDimension(t *testing.T) {
	model, err := Fit([]string{"alpha beta gamma", "gamma delta", "epsilon"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	dim := len(model.Vocabulary())
	for i := 0; i < model.Len(); i++ {
		if len(model.Vector(i)) != dim {
			t.Fatalf("vector %d has dimension %d, want %d", i, len(model.Vector(i)), dim)
		}
	}
}
