package layer

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestNameList_CommitDedupes(t *testing.T) {
	var l NameList
	l.SetPending("a")
	l.Commit()
	l.SetPending("a")
	l.Commit()
	l.SetPending("b")
	l.Commit()

	want := []string{"a", "b"}
	if got := l.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestNameList_CommitTrimsAndClearsPending(t *testing.T) {
	var l NameList
	l.SetPending("  topo:roads  ")
	l.Commit()
	if got := l.Names(); len(got) != 1 || got[0] != "topo:roads" {
		t.Fatalf("got %v", got)
	}
	if l.Pending() != "" {
		t.Fatalf("pending not cleared: %q", l.Pending())
	}

	// blank commit is silently ignored but still clears pending
	l.SetPending("   ")
	l.Commit()
	if l.Len() != 1 || l.Pending() != "" {
		t.Fatalf("blank commit changed state: len=%d pending=%q", l.Len(), l.Pending())
	}
}

func TestNameList_RemoveShiftsLeft(t *testing.T) {
	var l NameList
	for _, n := range []string{"a", "b", "c"} {
		l.Add(n)
	}
	l.Remove(1)
	want := []string{"a", "c"}
	if got := l.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	// out of range is a no-op
	l.Remove(-1)
	l.Remove(10)
	if got := l.Names(); !reflect.DeepEqual(got, want) {
		t.Fatalf("out-of-range remove changed list: %v", got)
	}
}

func TestLayerNames_SingularPluralMarshal(t *testing.T) {
	cases := []struct {
		names []string
		want  string
	}{
		{[]string{"x"}, `"x"`},
		{[]string{"x", "y"}, `["x","y"]`},
		{nil, `[]`},
	}
	for _, c := range cases {
		var l NameList
		for _, n := range c.names {
			l.Add(n)
		}
		v := l.Values()
		b, err := json.Marshal(v)
		if err != nil {
			t.Fatalf("marshal %v: %v", c.names, err)
		}
		if string(b) != c.want {
			t.Fatalf("marshal %v: got %s want %s", c.names, b, c.want)
		}
	}
}

func TestLayerNames_UnmarshalBothShapes(t *testing.T) {
	var one LayerNames
	if err := json.Unmarshal([]byte(`"x"`), &one); err != nil {
		t.Fatalf("unmarshal string: %v", err)
	}
	if !reflect.DeepEqual(one, LayerNames{"x"}) {
		t.Fatalf("got %v", one)
	}

	var many LayerNames
	if err := json.Unmarshal([]byte(`["x","y"]`), &many); err != nil {
		t.Fatalf("unmarshal list: %v", err)
	}
	if !reflect.DeepEqual(many, LayerNames{"x", "y"}) {
		t.Fatalf("got %v", many)
	}
}
