package model

import (
	"reflect"
	"testing"
)

func TestQuestionListQueryNormalize(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		q := QuestionListQuery{}
		q.Normalize()

		if q.Page != 1 {
			t.Errorf("page: got %d, want 1", q.Page)
		}
		if q.Limit != 20 {
			t.Errorf("limit: got %d, want 20", q.Limit)
		}
		if q.SortColumn != "created_at" || !q.SortDesc {
			t.Errorf("sort: got %s desc=%v, want created_at desc", q.SortColumn, q.SortDesc)
		}
	})

	t.Run("ClampLimit", func(t *testing.T) {
		q := QuestionListQuery{Page: -3, Limit: 500}
		q.Normalize()

		if q.Page != 1 {
			t.Errorf("page: got %d, want 1", q.Page)
		}
		if q.Limit != 100 {
			t.Errorf("limit: got %d, want 100", q.Limit)
		}
	})

	t.Run("SignedSortKey", func(t *testing.T) {
		q := QuestionListQuery{SortColumn: "-updatedAt"}
		q.Normalize()
		if q.SortColumn != "updated_at" || !q.SortDesc {
			t.Errorf("got %s desc=%v", q.SortColumn, q.SortDesc)
		}

		q = QuestionListQuery{SortColumn: "title"}
		q.Normalize()
		if q.SortColumn != "title" || q.SortDesc {
			t.Errorf("got %s desc=%v", q.SortColumn, q.SortDesc)
		}
	})

	t.Run("UnknownSortFallsBack", func(t *testing.T) {
		q := QuestionListQuery{SortColumn: "password_hash"}
		q.Normalize()
		if q.SortColumn != "created_at" || !q.SortDesc {
			t.Errorf("got %s desc=%v, want created_at desc", q.SortColumn, q.SortDesc)
		}
	})

	t.Run("TrimsTags", func(t *testing.T) {
		q := QuestionListQuery{Tags: []string{" go ", "", "  ", "sql"}}
		q.Normalize()
		if !reflect.DeepEqual(q.Tags, []string{"go", "sql"}) {
			t.Errorf("tags: got %v", q.Tags)
		}
	})
}

func TestQuestionListQueryOffset(t *testing.T) {
	q := QuestionListQuery{Page: 3, Limit: 20}
	q.Normalize()
	if got := q.Offset(); got != 40 {
		t.Errorf("offset: got %d, want 40", got)
	}
}
