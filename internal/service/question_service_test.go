package service

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"lyro/internal/model"
	"lyro/internal/repository"
)

func TestEscapeRegex(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Algebra", "Algebra"},
		{"3.1 Functions (Linear)", `3\.1 Functions \(Linear\)`},
		{"a+b*c?", `a\+b\*c\?`},
		{`x^2 - y$`, `x\^2 \- y\$`},
		{"[a|b] {c} /d\\", `\[a\|b\] \{c\} \/d\\`},
		{"", ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := escapeRegex(tt.in); got != tt.want {
				t.Errorf("escapeRegex(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestPracticeQueryResolve(t *testing.T) {
	tests := []struct {
		name       string
		query      PracticeQuery
		wantFilter bson.M
		wantErr    error
	}{
		{
			name:    "missing topic",
			query:   PracticeQuery{},
			wantErr: ErrTopicRequired,
		},
		{
			name:    "whitespace-only topic",
			query:   PracticeQuery{Topic: "   "},
			wantErr: ErrTopicRequired,
		},
		{
			name:  "topic only",
			query: PracticeQuery{Topic: "Algebra"},
			wantFilter: bson.M{
				"topic": bson.M{"$regex": "^Algebra$", "$options": "i"},
			},
		},
		{
			name:  "topic is trimmed",
			query: PracticeQuery{Topic: "  Algebra  "},
			wantFilter: bson.M{
				"topic": bson.M{"$regex": "^Algebra$", "$options": "i"},
			},
		},
		{
			name:  "metacharacters are escaped",
			query: PracticeQuery{Topic: "3.1 Functions (Linear)"},
			wantFilter: bson.M{
				"topic": bson.M{"$regex": `^3\.1 Functions \(Linear\)$`, "$options": "i"},
			},
		},
		{
			name:  "topic and paper",
			query: PracticeQuery{Topic: "Algebra", Paper: "Paper 1"},
			wantFilter: bson.M{
				"topic": bson.M{"$regex": "^Algebra$", "$options": "i"},
				"paper": "Paper 1",
			},
		},
		{
			name:  "topic and subject",
			query: PracticeQuery{Topic: "Algebra", Subject: "Mathematics"},
			wantFilter: bson.M{
				"topic":   bson.M{"$regex": "^Algebra$", "$options": "i"},
				"subject": "Mathematics",
			},
		},
		{
			name:  "all filters",
			query: PracticeQuery{Topic: "Algebra", Paper: " Paper 2 ", Subject: "Mathematics", Grade: "11"},
			wantFilter: bson.M{
				"topic":   bson.M{"$regex": "^Algebra$", "$options": "i"},
				"paper":   "Paper 2",
				"subject": "Mathematics",
				"grade":   11,
			},
		},
		{
			name:  "non-numeric grade is dropped",
			query: PracticeQuery{Topic: "Algebra", Grade: "twelve"},
			wantFilter: bson.M{
				"topic": bson.M{"$regex": "^Algebra$", "$options": "i"},
			},
		},
		{
			name:  "empty grade is dropped",
			query: PracticeQuery{Topic: "Algebra", Grade: ""},
			wantFilter: bson.M{
				"topic": bson.M{"$regex": "^Algebra$", "$options": "i"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, opts, err := tt.query.Resolve()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Resolve() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve() unexpected error: %v", err)
			}
			if !reflect.DeepEqual(filter, tt.wantFilter) {
				t.Errorf("Resolve() filter = %#v, want %#v", filter, tt.wantFilter)
			}
			wantSort := bson.D{{Key: "questionNumber", Value: 1}}
			if !reflect.DeepEqual(opts.Sort, wantSort) {
				t.Errorf("Resolve() sort = %#v, want %#v", opts.Sort, wantSort)
			}
		})
	}
}

func TestPracticeQueryCacheKey(t *testing.T) {
	a := PracticeQuery{Topic: "Algebra", Grade: "12"}
	b := PracticeQuery{Topic: " ALGEBRA ", Grade: " 12 "}
	if a.CacheKey() != b.CacheKey() {
		t.Errorf("equivalent queries got different keys: %q vs %q", a.CacheKey(), b.CacheKey())
	}

	c := PracticeQuery{Topic: "Algebra", Grade: "twelve"}
	d := PracticeQuery{Topic: "Algebra"}
	if c.CacheKey() != d.CacheKey() {
		t.Errorf("unparseable grade should key like no grade: %q vs %q", c.CacheKey(), d.CacheKey())
	}

	// A delimiter inside a field must not make distinct queries collide
	e := PracticeQuery{Topic: "a|"}
	f := PracticeQuery{Topic: "a", Paper: "|"}
	if e.CacheKey() == f.CacheKey() {
		t.Errorf("distinct queries share cache key %q", e.CacheKey())
	}
	g := PracticeQuery{Topic: `a\|b`}
	h := PracticeQuery{Topic: `a\`, Paper: "b"}
	if g.CacheKey() == h.CacheKey() {
		t.Errorf("distinct queries share cache key %q", g.CacheKey())
	}
}

// fakeQuestionRepo is an in-memory QuestionRepo for service tests
type fakeQuestionRepo struct {
	questions []*model.Question
	findErr   error
}

func (f *fakeQuestionRepo) Create(ctx context.Context, q *model.Question) error { return nil }
func (f *fakeQuestionRepo) GetByID(ctx context.Context, id string) (*model.Question, error) {
	return nil, nil
}
func (f *fakeQuestionRepo) Update(ctx context.Context, q *model.Question) error { return nil }
func (f *fakeQuestionRepo) Delete(ctx context.Context, id string) error         { return nil }
func (f *fakeQuestionRepo) Find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Question, error) {
	return f.questions, f.findErr
}
func (f *fakeQuestionRepo) GetAll(ctx context.Context) ([]*model.Question, error) {
	return f.questions, nil
}

var _ repository.QuestionRepo = (*fakeQuestionRepo)(nil)

// fakeQuestionCache is an in-memory QuestionCache for service tests
type fakeQuestionCache struct {
	data map[string][]*model.Question
}

func newFakeQuestionCache() *fakeQuestionCache {
	return &fakeQuestionCache{data: map[string][]*model.Question{}}
}

func (f *fakeQuestionCache) Set(ctx context.Context, key string, qs []*model.Question) error {
	f.data[key] = qs
	return nil
}
func (f *fakeQuestionCache) Get(ctx context.Context, key string) ([]*model.Question, error) {
	return f.data[key], nil
}
func (f *fakeQuestionCache) Flush(ctx context.Context) error {
	f.data = map[string][]*model.Question{}
	return nil
}

func TestQuestionServicePractice(t *testing.T) {
	want := []*model.Question{
		{QuestionNumber: "1a", Topic: "Algebra"},
		{QuestionNumber: "10", Topic: "Algebra"},
		{QuestionNumber: "2", Topic: "Algebra"},
	}
	repo := &fakeQuestionRepo{questions: want}
	cache := newFakeQuestionCache()
	svc := NewQuestionService(repo, cache, zap.NewNop())

	got, err := svc.Practice(context.Background(), PracticeQuery{Topic: "algebra"})
	if err != nil {
		t.Fatalf("Practice() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Practice() = %v, want %v", got, want)
	}

	// second call is served from cache
	repo.questions = nil
	got, err = svc.Practice(context.Background(), PracticeQuery{Topic: " ALGEBRA "})
	if err != nil {
		t.Fatalf("Practice() unexpected error on cached call: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("cached Practice() = %v, want %v", got, want)
	}
}

func TestQuestionServicePracticeKeyIsolation(t *testing.T) {
	pipeTopic := []*model.Question{{QuestionNumber: "1", Topic: "a|"}}
	repo := &fakeQuestionRepo{questions: pipeTopic}
	cache := newFakeQuestionCache()
	svc := NewQuestionService(repo, cache, zap.NewNop())

	if _, err := svc.Practice(context.Background(), PracticeQuery{Topic: "a|"}); err != nil {
		t.Fatalf("Practice() unexpected error: %v", err)
	}

	// A different query must hit the store, not the first query's cache entry
	pipePaper := []*model.Question{{QuestionNumber: "2", Topic: "a", Paper: "|"}}
	repo.questions = pipePaper
	got, err := svc.Practice(context.Background(), PracticeQuery{Topic: "a", Paper: "|"})
	if err != nil {
		t.Fatalf("Practice() unexpected error: %v", err)
	}
	if !reflect.DeepEqual(got, pipePaper) {
		t.Errorf("Practice() = %v, want %v (served another query's cached results)", got, pipePaper)
	}
}

// erroringQuestionCache fails every operation
type erroringQuestionCache struct{}

var errCacheDown = errors.New("connection refused")

func (erroringQuestionCache) Set(ctx context.Context, key string, qs []*model.Question) error {
	return errCacheDown
}
func (erroringQuestionCache) Get(ctx context.Context, key string) ([]*model.Question, error) {
	return nil, errCacheDown
}
func (erroringQuestionCache) Flush(ctx context.Context) error { return errCacheDown }

func TestQuestionServicePracticeCacheFailure(t *testing.T) {
	want := []*model.Question{{QuestionNumber: "1a", Topic: "Algebra"}}
	svc := NewQuestionService(&fakeQuestionRepo{questions: want}, erroringQuestionCache{}, zap.NewNop())

	got, err := svc.Practice(context.Background(), PracticeQuery{Topic: "Algebra"})
	if err != nil {
		t.Fatalf("Practice() with failing cache = %v, want store results", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Practice() = %v, want %v", got, want)
	}

	// admin writes also survive a failing cache flush
	if err := svc.Delete(context.Background(), "q1"); err != nil {
		t.Errorf("Delete() with failing cache = %v, want nil", err)
	}
}

func TestQuestionServicePracticeErrors(t *testing.T) {
	svc := NewQuestionService(&fakeQuestionRepo{}, newFakeQuestionCache(), zap.NewNop())

	if _, err := svc.Practice(context.Background(), PracticeQuery{}); !errors.Is(err, ErrTopicRequired) {
		t.Errorf("Practice() without topic = %v, want ErrTopicRequired", err)
	}

	storeErr := errors.New("connection reset")
	svc = NewQuestionService(&fakeQuestionRepo{findErr: storeErr}, newFakeQuestionCache(), zap.NewNop())
	if _, err := svc.Practice(context.Background(), PracticeQuery{Topic: "Algebra"}); !errors.Is(err, storeErr) {
		t.Errorf("Practice() store failure = %v, want wrapped %v", err, storeErr)
	}
}
