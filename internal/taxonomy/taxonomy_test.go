package taxonomy

import "testing"

func TestLookupResolvesAliases(t *testing.T) {
	reg := NewRegistry(Record{ID: "sinister-six", Name: "Sinister Six", Aliases: []string{"The Sinister Six"}})

	for _, name := range []string{"Sinister Six", "the sinister six", "SINISTER   SIX"} {
		rec, ok := reg.Lookup(name)
		if !ok {
			t.Fatalf("expected lookup hit for %q", name)
		}
		if rec.ID != "sinister-six" {
			t.Fatalf("expected sinister-six, got %q", rec.ID)
		}
	}

	if _, ok := reg.Lookup("Green Goblin"); ok {
		t.Fatal("expected lookup miss for an individual")
	}
}

func TestClassify(t *testing.T) {
	reg := DefaultRegistry()

	cases := []struct {
		name string
		want Kind
	}{
		{"Sinister Six", Group},       // registry canonical
		{"The Sinister Six", Group},   // registry alias
		{"Crime Master's Gang", Group},
		{"Savage Squad", Group},
		{"Hired Thugs", Group},
		{"Green Goblin", Individual},
		{"Sandman", Individual},
		{"Unknown assailant", Individual}, // placeholder, never a group
		{"The Unnamed One", Individual},
	}
	for _, c := range cases {
		if got := Classify(c.name, reg); got != c.want {
			t.Fatalf("Classify(%q): expected %s, got %s", c.name, c.want, got)
		}
	}
}

func TestClassifyIsPure(t *testing.T) {
	reg := DefaultRegistry()
	first := Classify("Enforcers", reg)
	for i := 0; i < 5; i++ {
		if got := Classify("Enforcers", reg); got != first {
			t.Fatalf("classification changed between calls: %s then %s", first, got)
		}
	}
}

func TestAuditSink(t *testing.T) {
	reg := NewRegistry(Record{ID: "enforcers", Name: "Enforcers"})
	sink := NewMemorySink(8)
	reg.SetAudit(sink)

	reg.Lookup("Enforcers")
	reg.Lookup("Nobody")

	events := sink.Events()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Kind != EventLookup || events[0].Result != "enforcers" {
		t.Fatalf("unexpected first event: %+v", events[0])
	}
	if events[1].Result != "" {
		t.Fatalf("miss should record empty result, got %q", events[1].Result)
	}

	sink.Clear()
	if len(sink.Events()) != 0 {
		t.Fatal("expected no events after Clear")
	}

	// disabled auditing must not panic or record
	reg.SetAudit(nil)
	reg.Lookup("Enforcers")
	if len(sink.Events()) != 0 {
		t.Fatal("expected detached sink to stay empty")
	}
}

func TestMemorySinkBounded(t *testing.T) {
	sink := NewMemorySink(3)
	for i := 0; i < 10; i++ {
		sink.Record(Event{Kind: EventLookup, Input: "x"})
	}
	if got := len(sink.Events()); got != 3 {
		t.Fatalf("expected bounded sink length 3, got %d", got)
	}
}
