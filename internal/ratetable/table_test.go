package ratetable

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"settlement-quote/internal/model"
)

func TestDefaultTable(t *testing.T) {
	tbl := Default()
	if tbl.BaseRate() != 9.5 {
		t.Fatalf("expected base rate 9.5, got %v", tbl.BaseRate())
	}
	adj := tbl.Adjustments()
	if adj.Min != 25000 || adj.Max != 15000 {
		t.Fatalf("expected adjustments 25000/15000, got %v/%v", adj.Min, adj.Max)
	}
	if Default() != tbl {
		t.Fatal("expected Default to return the same table")
	}
}

func TestDeriveKeys(t *testing.T) {
	keys := DeriveKeys(
		&model.LCPProfileData{AgeRange: "36-45", Gender: "Male", BodyFrame: "medium"},
		&model.LCPLifestyleData{Weight: "overweight"},
		&model.LCPHealthData{Smoke: "no", Health: " great ", Cardiac: "normal"},
	)
	want := []string{"age-36-45", "gender-male", "build-medium", "overweight", "smoke-no", "health-great", "cardiac-normal"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Fatalf("expected %v, got %v", want, keys)
	}

	normal := DeriveKeys(&model.LCPProfileData{}, &model.LCPLifestyleData{Weight: "normal"}, &model.LCPHealthData{})
	if normal[3] != "normal-weight" {
		t.Fatalf("expected normal-weight, got %s", normal[3])
	}
}

func TestLookupRateSumsSpreads(t *testing.T) {
	tbl := Default()
	keys := []string{"age-36-45", "gender-male", "build-medium", "overweight", "smoke-no", "health-great", "cardiac-normal"}
	got, err := tbl.LookupRate(keys)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := 9.5 + 0.5 + 0.5 + 0 + 0.75 + 0 + 0 + 0
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestLookupRateFailsClosed(t *testing.T) {
	_, err := Default().LookupRate([]string{"age-36-45", "gender-unknown"})
	if !errors.Is(err, ErrUnknownKey) {
		t.Fatalf("expected ErrUnknownKey, got %v", err)
	}
	if !strings.Contains(err.Error(), "gender-unknown") {
		t.Fatalf("expected error to name the key, got %v", err)
	}
}

func TestMustLookupRatePanicsOnUnknownKey(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	Default().MustLookupRate([]string{"cardiac-broken"})
}

func TestParseRejectsBadConfig(t *testing.T) {
	cases := map[string]string{
		"inverted adjustments": "base_discount_rate: 9\namount_adjustments: {min: 1000, max: 2000}\n",
		"zero base rate":       "base_discount_rate: 0\namount_adjustments: {min: 2000, max: 1000}\n",
		"missing spreads":      "base_discount_rate: 9\namount_adjustments: {min: 2000, max: 1000}\nspreads: {age-18-25: 0}\n",
		"not yaml":             "base_discount_rate: [",
	}
	for name, doc := range cases {
		if _, err := Parse([]byte(doc)); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestLoadFromFile(t *testing.T) {
	doc := strings.Replace(string(defaultTable), "base_discount_rate: 9.5", "base_discount_rate: 11", 1)
	path := filepath.Join(t.TempDir(), "rates.yaml")
	if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
		t.Fatal(err)
	}
	tbl, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tbl.BaseRate() != 11 {
		t.Fatalf("expected base rate 11, got %v", tbl.BaseRate())
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
