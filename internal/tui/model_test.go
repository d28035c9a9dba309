package tui

import (
	"context"
	"net/http"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"taskdeck/internal/listsync"
	"taskdeck/internal/service"
	"taskdeck/internal/testutil"
)

func newTestModel(t *testing.T, svc *testutil.FakeService) model {
	t.Helper()
	coord := listsync.New(svc, listsync.Options{PageSize: 3})
	m := newModel(context.Background(), coord)
	if err := coord.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	m.sync()
	svc.ResetCalls()
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "space":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

// press sends k and runs every resulting operation to completion.
func press(t *testing.T, m model, k tea.KeyMsg) model {
	t.Helper()
	mAny, cmd := m.Update(k)
	return drain(t, mAny.(model), cmd)
}

func drain(t *testing.T, m model, cmd tea.Cmd) model {
	t.Helper()
	if cmd == nil {
		return m
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			m = drain(t, m, c)
		}
	case opDoneMsg:
		mAny, next := m.Update(msg)
		m = drain(t, mAny.(model), next)
	}
	return m
}

func typeText(t *testing.T, m model, s string) model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
	return m
}

func titles(m model) []string {
	out := make([]string, len(m.snap.Items))
	for i, t := range m.snap.Items {
		out[i] = t.Title
	}
	return out
}

func TestView_ListsPageAndFooter(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTasks("Task", 4)
	m := newTestModel(t, svc)

	view := m.View()
	for _, want := range []string{"Task 4", "Task 2", "page 1/2, 4 tasks"} {
		if !strings.Contains(view, want) {
			t.Errorf("view should contain %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Task 1") {
		t.Errorf("view should not contain page 2:\n%s", view)
	}
}

func TestView_Empty(t *testing.T) {
	m := newTestModel(t, testutil.NewFakeService())

	if !strings.Contains(m.View(), "no tasks found") {
		t.Errorf("expected empty message, got:\n%s", m.View())
	}
}

func TestCursorMovement(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTasks("Task", 3)
	m := newTestModel(t, svc)

	m = press(t, m, key("j"))
	m = press(t, m, key("j"))
	m = press(t, m, key("j"))
	if m.cursor != 2 {
		t.Fatalf("expected cursor at 2, got %d", m.cursor)
	}
	m = press(t, m, key("k"))
	if m.cursor != 1 {
		t.Fatalf("expected cursor at 1, got %d", m.cursor)
	}
	if len(svc.Calls()) != 0 {
		t.Errorf("moving the cursor should not call the service, got %v", svc.Calls())
	}
}

func TestPaging(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTasks("Task", 4)
	m := newTestModel(t, svc)

	m = press(t, m, key("l"))
	if m.snap.Page != 2 {
		t.Fatalf("expected page 2, got %d", m.snap.Page)
	}
	if got := titles(m); len(got) != 1 || got[0] != "Task 1" {
		t.Fatalf("unexpected page 2 items %v", got)
	}

	// Already on the last page: no read.
	svc.ResetCalls()
	m = press(t, m, key("l"))
	if len(svc.Calls()) != 0 {
		t.Errorf("expected no read past the last page, got %v", svc.Calls())
	}

	m = press(t, m, key("h"))
	if m.snap.Page != 1 {
		t.Fatalf("expected page 1, got %d", m.snap.Page)
	}
}

func TestCreate(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTasks("Task", 4)
	m := newTestModel(t, svc)
	m = press(t, m, key("l"))

	m = press(t, m, key("n"))
	if m.mode != modeCreate {
		t.Fatalf("expected create mode, got %v", m.mode)
	}
	m = typeText(t, m, "Buy milk")
	m = press(t, m, key("tab"))
	m = typeText(t, m, "2L")
	m = press(t, m, key("enter"))

	if m.mode != modeList {
		t.Fatalf("expected the form to close, got mode %v", m.mode)
	}
	if m.titleInput.Value() != "" || m.descInput.Value() != "" {
		t.Error("expected the form to be cleared")
	}
	if m.snap.Page != 1 {
		t.Errorf("expected page 1 after create, got %d", m.snap.Page)
	}
	if got := titles(m); got[0] != "Buy milk" {
		t.Errorf("expected the new task first, got %v", got)
	}
	task, _ := svc.Task(5)
	if task.DescriptionText() != "2L" {
		t.Errorf("expected description %q, got %q", "2L", task.DescriptionText())
	}
}

func TestCreate_FailureKeepsForm(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.CreateErr = service.RequestFailed(http.StatusInternalServerError, "boom")
	m := newTestModel(t, svc)

	m = press(t, m, key("n"))
	m = typeText(t, m, "Buy milk")
	m = press(t, m, key("enter"))

	if m.mode != modeCreate {
		t.Fatalf("expected the form to stay open, got mode %v", m.mode)
	}
	if m.titleInput.Value() != "Buy milk" {
		t.Errorf("expected the title to be kept, got %q", m.titleInput.Value())
	}
	if m.snap.Err != "boom" {
		t.Errorf("expected error %q, got %q", "boom", m.snap.Err)
	}
	if !strings.Contains(m.View(), "error: boom") {
		t.Errorf("expected the error line in the view:\n%s", m.View())
	}

	// Retry after the service recovers.
	svc.CreateErr = nil
	m = press(t, m, key("enter"))
	if m.mode != modeList || svc.Count() != 1 {
		t.Errorf("expected the retry to create the task, mode %v count %d", m.mode, svc.Count())
	}
	if m.snap.Err != "" {
		t.Errorf("expected the error to clear, got %q", m.snap.Err)
	}
}

func TestCreate_BlankTitle(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestModel(t, svc)

	m = press(t, m, key("n"))
	m = press(t, m, key("enter"))

	if m.mode != modeCreate {
		t.Fatalf("expected the form to stay open, got mode %v", m.mode)
	}
	if m.snap.Err != listsync.ErrTitleRequired.Error() {
		t.Errorf("expected %q, got %q", listsync.ErrTitleRequired.Error(), m.snap.Err)
	}
	if len(svc.Calls()) != 0 {
		t.Errorf("expected no remote calls, got %v", svc.Calls())
	}
}

func TestCreate_EscCancels(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestModel(t, svc)

	m = press(t, m, key("n"))
	m = typeText(t, m, "abc")
	m = press(t, m, key("esc"))

	if m.mode != modeList {
		t.Fatalf("expected list mode, got %v", m.mode)
	}
	if len(svc.Calls()) != 0 {
		t.Errorf("expected no remote calls, got %v", svc.Calls())
	}
}

func TestToggle(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTasks("Task", 2)
	m := newTestModel(t, svc)

	m = press(t, m, key("j"))
	m = press(t, m, key("space"))

	task, _ := svc.Task(1)
	if !task.IsDone {
		t.Fatal("expected task 1 to be done")
	}
	if !m.snap.Items[1].IsDone {
		t.Error("expected the re-read page to show the task done")
	}

	m = press(t, m, key("x"))
	task, _ = svc.Task(1)
	if task.IsDone {
		t.Error("expected task 1 to be open again")
	}
}

func TestDelete_Confirm(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTasks("Task", 2)
	m := newTestModel(t, svc)

	m = press(t, m, key("d"))
	if m.mode != modeConfirmDelete {
		t.Fatalf("expected confirm mode, got %v", m.mode)
	}
	if !strings.Contains(m.View(), `Delete "Task 2"?`) {
		t.Errorf("expected the confirm prompt:\n%s", m.View())
	}

	m = press(t, m, key("n"))
	if m.mode != modeList || svc.Count() != 2 {
		t.Fatalf("expected no delete, mode %v count %d", m.mode, svc.Count())
	}

	m = press(t, m, key("d"))
	m = press(t, m, key("y"))
	if svc.Count() != 1 {
		t.Fatalf("expected 1 task, got %d", svc.Count())
	}
	if got := titles(m); len(got) != 1 || got[0] != "Task 1" {
		t.Errorf("unexpected items after delete %v", got)
	}
}

func TestDelete_LastItemOnPageMovesBack(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTasks("Task", 4)
	m := newTestModel(t, svc)
	m = press(t, m, key("l"))

	m = press(t, m, key("d"))
	m = press(t, m, key("enter"))

	if m.snap.Page != 1 {
		t.Fatalf("expected page 1, got %d", m.snap.Page)
	}
	if len(m.snap.Items) != 3 {
		t.Errorf("expected 3 items, got %d", len(m.snap.Items))
	}
}

func TestEdit_Save(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk")
	m := newTestModel(t, svc)

	m = press(t, m, key("e"))
	if m.mode != modeEdit {
		t.Fatalf("expected edit mode, got %v", m.mode)
	}
	if m.editTitle.Value() != "Buy milk" {
		t.Fatalf("expected the title to be seeded, got %q", m.editTitle.Value())
	}
	m = typeText(t, m, "!")
	d, ok := m.coord.Draft()
	if !ok || d.Title != "Buy milk!" {
		t.Fatalf("expected the draft to follow the input, got %+v", d)
	}

	m = press(t, m, key("enter"))

	if m.mode != modeList {
		t.Fatalf("expected the modal to close, got mode %v", m.mode)
	}
	if m.snap.Draft != nil {
		t.Error("expected no draft after save")
	}
	task, _ := svc.Task(1)
	if task.Title != "Buy milk!" {
		t.Errorf("expected title %q, got %q", "Buy milk!", task.Title)
	}
}

func TestEdit_EnterWhileSavingSendsOneUpdate(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk")
	m := newTestModel(t, svc)

	m = press(t, m, key("e"))
	m = typeText(t, m, "!")

	mAny, first := m.Update(key("enter"))
	m = mAny.(model)
	mAny, second := m.Update(key("enter"))
	m = mAny.(model)
	if second != nil {
		t.Fatal("expected no second save while the first is in flight")
	}
	m = drain(t, m, first)

	if got := svc.CallCount("update"); got != 1 {
		t.Errorf("expected one update call, got %d", got)
	}
	if m.mode != modeList || m.saving {
		t.Errorf("expected the modal closed and idle, got mode %v saving %v", m.mode, m.saving)
	}
}

func TestEdit_FailureKeepsModal(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk")
	svc.UpdateErr = service.RequestFailed(http.StatusConflict, "Title already exists")
	m := newTestModel(t, svc)

	m = press(t, m, key("e"))
	m = typeText(t, m, "!")
	m = press(t, m, key("enter"))

	if m.mode != modeEdit {
		t.Fatalf("expected the modal to stay open, got mode %v", m.mode)
	}
	if m.editTitle.Value() != "Buy milk!" {
		t.Errorf("expected the edit to be kept, got %q", m.editTitle.Value())
	}
	if m.snap.Err != "Title already exists" {
		t.Errorf("unexpected error %q", m.snap.Err)
	}
}

func TestEdit_EscCancels(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk")
	m := newTestModel(t, svc)

	m = press(t, m, key("e"))
	m = typeText(t, m, "zzz")
	m = press(t, m, key("esc"))

	if m.mode != modeList {
		t.Fatalf("expected list mode, got %v", m.mode)
	}
	if _, ok := m.coord.Draft(); ok {
		t.Error("expected the draft to be discarded")
	}
	if svc.CallCount("update") != 0 {
		t.Error("expected no update call")
	}
}

func TestSearch_EveryEditReads(t *testing.T) {
	svc := testutil.NewFakeService()
	svc.AddTask("Buy milk")
	svc.AddTask("Walk dog")
	svc.AddTask("Milk the cow")
	m := newTestModel(t, svc)

	m = press(t, m, key("/"))
	if m.mode != modeSearch {
		t.Fatalf("expected search mode, got %v", m.mode)
	}
	m = typeText(t, m, "mi")

	if got := svc.CallCount("search"); got != 2 {
		t.Errorf("expected 2 search reads, got %d", got)
	}
	if m.snap.SearchTerm != "mi" {
		t.Errorf("expected term %q, got %q", "mi", m.snap.SearchTerm)
	}
	if got := titles(m); len(got) != 2 {
		t.Errorf("expected 2 matches, got %v", got)
	}

	m = press(t, m, key("enter"))
	if m.mode != modeList {
		t.Fatalf("expected list mode, got %v", m.mode)
	}
	if !strings.Contains(m.View(), `search "mi"`) {
		t.Errorf("expected the footer to show the term:\n%s", m.View())
	}
}

func TestStateChangedMsgResyncs(t *testing.T) {
	svc := testutil.NewFakeService()
	m := newTestModel(t, svc)

	svc.AddTask("Buy milk")
	if err := m.coord.Reload(context.Background()); err != nil {
		t.Fatalf("reload: %v", err)
	}
	mAny, _ := m.Update(stateChangedMsg{})
	m = mAny.(model)

	if got := titles(m); len(got) != 1 || got[0] != "Buy milk" {
		t.Errorf("expected the new snapshot, got %v", got)
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(t, testutil.NewFakeService())

	for _, k := range []string{"q", "ctrl+c"} {
		_, cmd := m.Update(key(k))
		if cmd == nil {
			t.Fatalf("%s: expected a quit command", k)
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: expected tea.QuitMsg", k)
		}
	}
}
