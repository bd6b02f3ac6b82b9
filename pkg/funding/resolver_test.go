package funding

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	errs "github.com/matzehuels/tipjar/pkg/errors"
	"github.com/matzehuels/tipjar/pkg/integrations/npm"
	"github.com/matzehuels/tipjar/pkg/observability"
)

type fakeRegistry struct {
	pkgs  map[string]*npm.Package
	calls sync.Map
}

func (f *fakeRegistry) FetchPackage(_ context.Context, name string, _ bool) (*npm.Package, error) {
	n, _ := f.calls.LoadOrStore(name, new(atomic.Int32))
	n.(*atomic.Int32).Add(1)
	if p, ok := f.pkgs[name]; ok {
		return p, nil
	}
	return nil, errs.New(errs.ErrCodeUpstreamStatus, "status 500")
}

func (f *fakeRegistry) count(name string) int32 {
	n, ok := f.calls.Load(name)
	if !ok {
		return 0
	}
	return n.(*atomic.Int32).Load()
}

type fakeHosting struct {
	repos map[string][]string
	delay time.Duration
	calls atomic.Int32
}

func (f *fakeHosting) Collaborators(_ context.Context, owner, repo string, _ bool) ([]string, error) {
	f.calls.Add(1)
	time.Sleep(f.delay)
	if logins, ok := f.repos[owner+"/"+repo]; ok {
		return logins, nil
	}
	return nil, errs.New(errs.ErrCodeNotFound, "no repo")
}

type fakeDonations struct {
	handles map[string]string
	calls   atomic.Int32
}

func (f *fakeDonations) Lookup(_ context.Context, user string, _ bool) (string, error) {
	f.calls.Add(1)
	if h, ok := f.handles[user]; ok {
		return h, nil
	}
	return "", errs.New(errs.ErrCodeNotFound, "no profile")
}

func repoField(owner, name string) []byte {
	return []byte(`{"type":"git","url":"git+https://github.com/` + owner + "/" + name + `.git"}`)
}

func fixture() (*fakeRegistry, *fakeHosting, *fakeDonations) {
	reg := &fakeRegistry{pkgs: map[string]*npm.Package{
		"app": {
			Name:            "app",
			Dependencies:    []string{"lib", "util"},
			DevDependencies: []string{"lib", "test"},
			Repository:      repoField("me", "app"),
		},
		"lib":  {Name: "lib", Repository: repoField("them", "lib")},
		"util": {Name: "util", Repository: []byte(`"github:them/util"`)},
		"test": {Name: "test", Repository: repoField("me", "app")},
	}}
	hosting := &fakeHosting{repos: map[string][]string{
		"me/app":   {"alice", "bob"},
		"them/lib": {"alice", "carol"},
	}}
	donations := &fakeDonations{handles: map[string]string{
		"alice": "alice",
		"carol": "carol",
	}}
	return reg, hosting, donations
}

func TestCandidates(t *testing.T) {
	pkg := &npm.Package{
		Name:            "root",
		Dependencies:    []string{"b", "a", "root"},
		DevDependencies: []string{"a", "c"},
	}
	if got, want := Candidates(pkg), []string{"root", "a", "b", "c"}; !slices.Equal(got, want) {
		t.Errorf("Candidates() = %v, want %v", got, want)
	}
	if got := Candidates(&npm.Package{Name: "solo"}); !slices.Equal(got, []string{"solo"}) {
		t.Errorf("Candidates() = %v, want [solo]", got)
	}
}

func TestByPackage(t *testing.T) {
	reg, hosting, donations := fixture()
	r := NewResolver(reg, hosting, donations, nil)

	res, err := r.ByPackage(context.Background(), "app")
	if err != nil {
		t.Fatalf("ByPackage() error: %v", err)
	}
	// app and test share me/app, lib adds them/lib, util's bare-string
	// repository contributes nothing.
	want := []Entry{{"alice", 3}, {"carol", 1}}
	if res.Subject != "app" || !slices.Equal(res.Users, want) {
		t.Errorf("ByPackage() = %+v, want users %v", res, want)
	}

	if hosting.calls.Load() != 2 {
		t.Errorf("collaborators fetched %d times, want 2 (one per repo)", hosting.calls.Load())
	}
	if donations.calls.Load() != 3 {
		t.Errorf("funding looked up %d times, want 3 (one per login)", donations.calls.Load())
	}
}

func TestByPackage_DependencyListedTwiceCountsOnce(t *testing.T) {
	reg := &fakeRegistry{pkgs: map[string]*npm.Package{
		"root": {Name: "root", Dependencies: []string{"dup"}, DevDependencies: []string{"dup"}},
		"dup":  {Name: "dup", Repository: repoField("o", "dup")},
	}}
	hosting := &fakeHosting{repos: map[string][]string{"o/dup": {"alice"}}}
	donations := &fakeDonations{handles: map[string]string{"alice": "alice"}}

	res, _ := NewResolver(reg, hosting, donations, nil).ByPackage(context.Background(), "root")
	if want := []Entry{{"alice", 1}}; !slices.Equal(res.Users, want) {
		t.Errorf("Users = %v, want %v", res.Users, want)
	}
}

func TestByPackage_RegistryFailure(t *testing.T) {
	reg, hosting, donations := fixture()
	r := NewResolver(reg, hosting, donations, nil)

	res, err := r.ByPackage(context.Background(), "missing")
	if err != nil {
		t.Fatalf("ByPackage() error: %v", err)
	}
	if res.Users == nil || len(res.Users) != 0 {
		t.Errorf("Users = %#v, want empty non-nil", res.Users)
	}
	if hosting.calls.Load() != 0 {
		t.Error("no collaborator lookups expected")
	}

	// The failure is memoized.
	r.ByPackage(context.Background(), "missing")
	if reg.count("missing") != 1 {
		t.Errorf("registry fetched %d times, want 1", reg.count("missing"))
	}
}

func TestByPackage_Sanitizes(t *testing.T) {
	reg, hosting, donations := fixture()
	r := NewResolver(reg, hosting, donations, nil)

	res, _ := r.ByPackage(context.Background(), "../app")
	if res.Subject != "..app" {
		t.Errorf("Subject = %q, want ..app", res.Subject)
	}
	if reg.count("..app") != 1 || reg.count("../app") != 0 {
		t.Error("registry should only see the sanitized name")
	}

	res, _ = r.ByPackage(context.Background(), "///")
	if res.Subject != "" || len(res.Users) != 0 {
		t.Errorf("ByPackage(///) = %+v, want empty", res)
	}
}

func TestByPackage_ConcurrentCallsShareLookups(t *testing.T) {
	reg, hosting, donations := fixture()
	hosting.delay = 20 * time.Millisecond
	r := NewResolver(reg, hosting, donations, nil)

	var wg sync.WaitGroup
	results := make([]Result, 20)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _ = r.ByPackage(context.Background(), "app")
		}()
	}
	wg.Wait()

	for _, res := range results {
		if !slices.Equal(res.Users, results[0].Users) {
			t.Fatalf("results differ: %v vs %v", res.Users, results[0].Users)
		}
	}
	if reg.count("app") != 1 {
		t.Errorf("registry fetched app %d times, want 1", reg.count("app"))
	}
	if hosting.calls.Load() != 2 {
		t.Errorf("collaborators fetched %d times, want 2", hosting.calls.Load())
	}
}

func TestByPackage_CallerCancelled(t *testing.T) {
	reg, hosting, donations := fixture()
	hosting.delay = 50 * time.Millisecond
	r := NewResolver(reg, hosting, donations, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.ByPackage(ctx, "app"); err == nil {
		t.Error("expected context error")
	}

	res, err := r.ByPackage(context.Background(), "app")
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Users) != 2 {
		t.Errorf("shared lookup should still complete, got %v", res.Users)
	}
}

type resolveEvents struct {
	mu        sync.Mutex
	started   []string
	completed []string
}

func (e *resolveEvents) OnResolveStart(_ context.Context, flow, subject string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.started = append(e.started, flow+":"+subject)
}

func (e *resolveEvents) OnResolveComplete(_ context.Context, flow, subject string, _ int, _ time.Duration) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.completed = append(e.completed, flow+":"+subject)
}

func TestResolveHooksBalancedOnCancel(t *testing.T) {
	events := &resolveEvents{}
	observability.SetResolveHooks(events)
	t.Cleanup(observability.Reset)

	reg, hosting, donations := fixture()
	hosting.delay = 50 * time.Millisecond
	r := NewResolver(reg, hosting, donations, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.ByPackage(ctx, "app"); err == nil {
		t.Error("ByPackage: expected context error")
	}
	if _, err := r.ByRepo(ctx, "them", "lib"); err == nil {
		t.Error("ByRepo: expected context error")
	}

	events.mu.Lock()
	defer events.mu.Unlock()
	want := []string{"npm:app", "github:them/lib"}
	if !slices.Equal(events.started, want) {
		t.Errorf("started = %v, want %v", events.started, want)
	}
	if !slices.Equal(events.completed, want) {
		t.Errorf("completed = %v, want %v", events.completed, want)
	}
}

func TestByRepo(t *testing.T) {
	reg, hosting, donations := fixture()
	r := NewResolver(reg, hosting, donations, nil, WithFanoutLimit(1))

	res, err := r.ByRepo(context.Background(), "them", "lib")
	if err != nil {
		t.Fatal(err)
	}
	if want := []Entry{{"alice", 1}, {"carol", 1}}; !slices.Equal(res.Users, want) {
		t.Errorf("Users = %v, want %v", res.Users, want)
	}
	if res.Subject != "them/lib" {
		t.Errorf("Subject = %q", res.Subject)
	}

	res, _ = r.ByRepo(context.Background(), "nobody", "nothing")
	if len(res.Users) != 0 {
		t.Errorf("unknown repo should yield no users, got %v", res.Users)
	}

	res, _ = r.ByRepo(context.Background(), "!!", "lib")
	if len(res.Users) != 0 || hosting.calls.Load() != 2 {
		t.Error("empty owner after sanitizing should skip the lookup")
	}
}

func TestByRepo_SharesCacheWithPackages(t *testing.T) {
	reg, hosting, donations := fixture()
	r := NewResolver(reg, hosting, donations, nil)

	r.ByRepo(context.Background(), "me", "app")
	r.ByPackage(context.Background(), "app")

	if hosting.calls.Load() != 2 {
		t.Errorf("collaborators fetched %d times, want 2", hosting.calls.Load())
	}
	sizes := r.Caches().Sizes()
	if sizes["repos"] != 2 || sizes["packages"] != 4 || sizes["views"] != 1 {
		t.Errorf("Sizes() = %v", sizes)
	}
}
