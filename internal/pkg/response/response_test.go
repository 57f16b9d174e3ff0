package response

import "testing"

func TestPaginate(t *testing.T) {
	// middle page has both sides
	p := Paginate(2, 10, 35)
	if p.Next == nil || p.Next.Page != 3 || p.Next.Limit != 10 {
		t.Fatalf("expected next page 3, got %+v", p.Next)
	}
	if p.Prev == nil || p.Prev.Page != 1 {
		t.Fatalf("expected prev page 1, got %+v", p.Prev)
	}

	// first page has no prev
	p = Paginate(1, 10, 35)
	if p.Prev != nil {
		t.Fatalf("expected no prev on first page, got %+v", p.Prev)
	}

	// last page has no next
	p = Paginate(4, 10, 35)
	if p.Next != nil {
		t.Fatalf("expected no next on last page, got %+v", p.Next)
	}

	// exact boundary: page*limit == total means no next
	p = Paginate(2, 10, 20)
	if p.Next != nil {
		t.Fatalf("expected no next at exact boundary, got %+v", p.Next)
	}

	// empty result
	p = Paginate(1, 10, 0)
	if p.Next != nil || p.Prev != nil {
		t.Fatalf("expected empty pagination, got %+v", p)
	}
}
