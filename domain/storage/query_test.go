package storage

import "testing"

func TestBuild_Empty(t *testing.T) {
	q := Build()

	if len(q.Conditions()) != 0 {
		t.Errorf("expected no conditions, got %d", len(q.Conditions()))
	}
	if len(q.Orders()) != 0 {
		t.Errorf("expected no orders, got %d", len(q.Orders()))
	}
	if q.LimitValue() != 0 || q.OffsetValue() != 0 {
		t.Errorf("expected zero limit/offset, got %d/%d", q.LimitValue(), q.OffsetValue())
	}
}

func TestBuild_Conditions(t *testing.T) {
	q := Build(
		WithID(7),
		WithCondition("status", "Completed"),
		WithConditionIn("category", []string{"Healthcare", "E-commerce"}),
		WithNotNull("embedding"),
		WithNull("end_date"),
	)

	conds := q.Conditions()
	if len(conds) != 5 {
		t.Fatalf("expected 5 conditions, got %d", len(conds))
	}

	if conds[0].Field() != "id" || conds[0].Kind() != CondEqual || conds[0].Value() != int64(7) {
		t.Errorf("unexpected id condition: %v", conds[0])
	}
	if conds[2].Kind() != CondIn {
		t.Errorf("expected IN condition, got %v", conds[2].Kind())
	}
	if conds[3].Kind() != CondNotNull || conds[3].Field() != "embedding" {
		t.Errorf("unexpected not-null condition: %v", conds[3])
	}
	if conds[4].Kind() != CondNull || conds[4].Field() != "end_date" {
		t.Errorf("unexpected null condition: %v", conds[4])
	}
}

func TestBuild_Ordering(t *testing.T) {
	q := Build(WithOrderDesc("created_at"), WithOrderAsc("id"))

	orders := q.Orders()
	if len(orders) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(orders))
	}
	if orders[0].Field() != "created_at" || orders[0].Ascending() {
		t.Errorf("expected created_at DESC first, got %v", orders[0])
	}
	if orders[1].Field() != "id" || !orders[1].Ascending() {
		t.Errorf("expected id ASC second, got %v", orders[1])
	}
}

func TestBuild_Pagination(t *testing.T) {
	q := Build(WithPagination(10, 20)...)

	if q.LimitValue() != 10 {
		t.Errorf("expected limit 10, got %d", q.LimitValue())
	}
	if q.OffsetValue() != 20 {
		t.Errorf("expected offset 20, got %d", q.OffsetValue())
	}
}

func TestCondition_String(t *testing.T) {
	cases := []struct {
		opt  Option
		want string
	}{
		{WithCondition("status", "Pending"), "status = Pending"},
		{WithConditionIn("id", []int64{1, 2}), "id IN [1 2]"},
		{WithNotNull("embedding"), "embedding IS NOT NULL"},
		{WithNull("end_date"), "end_date IS NULL"},
	}

	for _, tc := range cases {
		cond := Build(tc.opt).Conditions()[0]
		if got := cond.String(); got != tc.want {
			t.Errorf("expected %q, got %q", tc.want, got)
		}
	}
}
