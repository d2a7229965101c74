package runner_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/rewerma/commons-dbutils/runner"
)

type myBean struct {
	A int
	B float64
	C string
}

type accessorBean struct {
	values map[string]any
}

func (b *accessorBean) Property(name string) (any, error) {
	v, ok := b.values[name]
	if !ok {
		return nil, fmt.Errorf("unknown property %q", name)
	}
	return v, nil
}

type getterBean struct {
	name string
}

func (b getterBean) Name() string { return b.name }

func TestFillStatement(t *testing.T) {
	_, _, stmt, r := newFixture(2)

	if err := r.FillStatement(stmt, "unit", "test"); err != nil {
		t.Fatalf("FillStatement failed: %v", err)
	}
	if len(stmt.Binds) != 2 {
		t.Fatalf("Expected 2 binds, got %d", len(stmt.Binds))
	}
	if stmt.Binds[0].Pos != 1 || stmt.Binds[0].Value != "unit" {
		t.Errorf("First bind = %+v", stmt.Binds[0])
	}
	if stmt.Binds[1].Pos != 2 || stmt.Binds[1].Value != "test" {
		t.Errorf("Second bind = %+v", stmt.Binds[1])
	}
}

func TestFillStatementMismatch(t *testing.T) {
	_, _, stmt, r := newFixture(2)

	err := r.FillStatement(stmt, "unit")
	if !errors.Is(err, runner.ErrParameterCountMismatch) {
		t.Fatalf("Expected parameter count mismatch, got %v", err)
	}
	if len(stmt.Binds) != 0 {
		t.Errorf("Bound %d values despite mismatch", len(stmt.Binds))
	}
}

func TestFillStatementMetadataError(t *testing.T) {
	_, _, stmt, r := newFixture(2)
	stmt.ParamErr = errors.New("metadata unavailable")

	if err := r.FillStatement(stmt, "unit", "test"); err == nil {
		t.Fatal("Expected metadata error")
	}
}

func TestFillStatementBindError(t *testing.T) {
	_, _, stmt, r := newFixture(2)
	stmt.BindErr = errors.New("bind failed")

	if err := r.FillStatement(stmt, "unit", "test"); err == nil {
		t.Fatal("Expected bind error")
	}
}

func TestFillStatementWithBean(t *testing.T) {
	_, _, stmt, r := newFixture(3)
	bean := &myBean{A: 1, B: 2.5, C: "three"}

	if err := r.FillStatementWithBean(stmt, bean, "a", "b", "c"); err != nil {
		t.Fatalf("FillStatementWithBean failed: %v", err)
	}
	if len(stmt.Binds) != 3 {
		t.Fatalf("Expected 3 binds, got %d", len(stmt.Binds))
	}
	if stmt.Binds[0].Value != 1 || stmt.Binds[1].Value != 2.5 || stmt.Binds[2].Value != "three" {
		t.Errorf("Binds = %+v", stmt.Binds)
	}
}

func TestFillStatementWithBeanEmptyName(t *testing.T) {
	_, _, stmt, r := newFixture(3)
	bean := &myBean{}

	err := r.FillStatementWithBean(stmt, bean, "a", "b", "")
	if !errors.Is(err, runner.ErrBinderConfig) {
		t.Fatalf("Expected binder configuration error, got %v", err)
	}
	if len(stmt.Binds) != 0 {
		t.Errorf("Bound %d values despite bad property list", len(stmt.Binds))
	}
}

func TestFillStatementWithBeanUnknownProperty(t *testing.T) {
	_, _, stmt, r := newFixture(1)

	err := r.FillStatementWithBean(stmt, &myBean{}, "missing")
	if !errors.Is(err, runner.ErrBinderConfig) {
		t.Fatalf("Expected binder configuration error, got %v", err)
	}
}

func TestFillStatementWithBeanNilSource(t *testing.T) {
	_, _, stmt, r := newFixture(1)

	err := r.FillStatementWithBean(stmt, nil, "a")
	if !errors.Is(err, runner.ErrBinderConfig) {
		t.Fatalf("Expected binder configuration error, got %v", err)
	}
}

func TestFillStatementWithBeanAccessor(t *testing.T) {
	_, _, stmt, r := newFixture(2)
	bean := &accessorBean{values: map[string]any{"first": "unit", "second": "test"}}

	if err := r.FillStatementWithBean(stmt, bean, "first", "second"); err != nil {
		t.Fatalf("FillStatementWithBean failed: %v", err)
	}
	if stmt.Binds[0].Value != "unit" || stmt.Binds[1].Value != "test" {
		t.Errorf("Binds = %+v", stmt.Binds)
	}
}

func TestFillStatementWithBeanAccessorError(t *testing.T) {
	_, _, stmt, r := newFixture(1)
	bean := &accessorBean{values: map[string]any{}}

	err := r.FillStatementWithBean(stmt, bean, "missing")
	if !errors.Is(err, runner.ErrBinderConfig) {
		t.Fatalf("Expected binder configuration error, got %v", err)
	}
}

func TestFillStatementWithBeanGetter(t *testing.T) {
	_, _, stmt, r := newFixture(1)

	if err := r.FillStatementWithBean(stmt, getterBean{name: "unit"}, "name"); err != nil {
		t.Fatalf("FillStatementWithBean failed: %v", err)
	}
	if stmt.Binds[0].Value != "unit" {
		t.Errorf("Binds = %+v", stmt.Binds)
	}
}
