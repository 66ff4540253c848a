package updater

import (
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"rasp.mgkct.by/teachersbot/modules/tg"
	"rasp.mgkct.by/teachersbot/modules/timetable"
)

const dayPage = `<html><body><div id="wrapperTables">
<div>Иванов И. И. - среда, 03.09.2025</div>
<div><table>
<tr><th>№1</th></tr>
<tr><td>Группа 123</td></tr>
<tr><td>204</td></tr>
</table></div>
</div></body></html>`

// Та же страница с преподавателем вне списка: подпись другая,
// результат разбора тот же
const dayPageRefreshed = `<html><body><div id="wrapperTables">
<div>Иванов И. И. - среда, 03.09.2025</div>
<div><table>
<tr><th>№1</th></tr>
<tr><td>Группа 123</td></tr>
<tr><td>204</td></tr>
</table></div>
<div>Новиков Н. Н. - среда, 03.09.2025</div>
<div><table>
<tr><th>№1</th></tr>
<tr><td>Группа 999</td></tr>
<tr><td>101</td></tr>
</table></div>
</div></body></html>`

// Суббота за пределами недели со страницы weekPage
const saturdayDayPage = `<html><body><div id="wrapperTables">
<div>Иванов И. И. - суббота, 13.09.2025</div>
<div><table>
<tr><th>№1</th></tr>
<tr><td>Группа 123</td></tr>
<tr><td>204</td></tr>
</table></div>
</div></body></html>`

const weekPage = `<html><body><div class="entry">
<h2>1 - Иванов И. И.</h2>
<h3>01.09.2025 - 06.09.2025</h3>
<div><table>
<tr><th>Пара</th><th>понедельник, 01.09.2025</th></tr>
<tr><td>№1</td><td>Группа 123 каб. 204</td></tr>
</table></div>
</div></body></html>`

// Заглушка источника страниц. Канал block задерживает дневную
// загрузку для проверки защиты от параллельных циклов,
// started закрывается при входе в первую загрузку
type stubFetcher struct {
	day, week string
	block     chan struct{}
	started   chan struct{}
	once      sync.Once
}

func (f *stubFetcher) DayPage() (*goquery.Document, error) {
	if f.started != nil {
		f.once.Do(func() { close(f.started) })
	}
	if f.block != nil {
		<-f.block
	}

	return goquery.NewDocumentFromReader(strings.NewReader(f.day))
}

func (f *stubFetcher) WeekPage() (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(f.week))
}

func testUpdater(t *testing.T, f Fetcher) *Updater {
	t.Helper()

	return &Updater{
		Bot:       &tg.Bot{Snapshot: &timetable.Holder{}},
		Fetcher:   f,
		Roster:    &timetable.Roster{Teachers: []string{"Иванов И. И."}},
		State:     &State{Version: StateVersion},
		StatePath: filepath.Join(t.TempDir(), "last.json"),
		WkPath:    "true",
		ImgPath:   t.TempDir(),
	}
}

func TestTickUnchangedSignature(t *testing.T) {
	u := testUpdater(t, &stubFetcher{day: dayPage, week: weekPage})

	u.Tick()
	if u.Parses != 1 {
		t.Fatalf("first tick: %d parses", u.Parses)
	}
	tt := u.Bot.Snapshot.Get()
	if tt == nil || tt.Date != "среда, 03.09.2025" {
		t.Fatalf("snapshot after first tick: %+v", tt)
	}
	if u.State.WeekInterval[0].IsZero() {
		t.Error("week interval not picked up")
	}
	if len(u.State.ThHeaders) == 0 {
		t.Error("day headers not picked up")
	}

	// Те же страницы - подписи совпали, разбор не запускается
	u.Tick()
	if u.Parses != 1 {
		t.Fatalf("unchanged page reparsed: %d parses", u.Parses)
	}
}

func TestTickChangedPage(t *testing.T) {
	f := &stubFetcher{day: dayPage, week: weekPage}
	u := testUpdater(t, f)

	u.Tick()
	f.day = dayPageRefreshed
	u.Tick()

	if u.Parses != 2 {
		t.Fatalf("changed page skipped: %d parses", u.Parses)
	}
	tt := u.Bot.Snapshot.Get()
	if len(tt.TeacherInfos) != 1 || tt.TeacherInfos[0].Name != "Иванов И. И." {
		t.Fatalf("snapshot: %+v", tt)
	}
	if !u.State.Timetable.Equals(tt) {
		t.Error("state and snapshot diverge")
	}
}

// Досрочно выложенная суббота откладывается, а не теряется:
// без записанной подписи следующий цикл разбирает её заново
func TestTickSaturdayRetry(t *testing.T) {
	u := testUpdater(t, &stubFetcher{day: saturdayDayPage, week: weekPage})

	u.Tick()
	if u.Bot.Snapshot.Get() != nil {
		t.Fatal("saturday outside the known week must not be parsed")
	}
	if u.State.LastDaySignature != "" {
		t.Fatalf("aborted parse recorded the day signature: %q", u.State.LastDaySignature)
	}

	// Интервал догнал субботу - страница разбирается со следующего цикла
	u.State.WeekInterval = [2]time.Time{
		time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 9, 13, 0, 0, 0, 0, time.UTC),
	}
	u.Tick()

	tt := u.Bot.Snapshot.Get()
	if tt == nil || tt.Date != "суббота, 13.09.2025" {
		t.Fatalf("saturday inside the week must be parsed: %+v", tt)
	}
	if u.State.LastDaySignature == "" {
		t.Error("completed parse must record the day signature")
	}
}

func TestTickSkipsWhileBusy(t *testing.T) {
	f := &stubFetcher{
		day:     dayPage,
		week:    weekPage,
		block:   make(chan struct{}),
		started: make(chan struct{}),
	}
	u := testUpdater(t, f)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		u.Tick()
	}()

	// Первый цикл висит на загрузке, второй обязан выйти сразу
	<-f.started
	u.Tick()
	close(f.block)
	wg.Wait()

	if u.Parses != 1 {
		t.Fatalf("overlapping ticks: %d parses", u.Parses)
	}
}

func TestTickStatePersisted(t *testing.T) {
	u := testUpdater(t, &stubFetcher{day: dayPage, week: weekPage})
	u.Tick()

	loaded := LoadState(u.StatePath)
	if loaded.LastDaySignature != u.State.LastDaySignature {
		t.Error("day signature not persisted")
	}
	if loaded.Timetable == nil || !loaded.Timetable.Equals(u.State.Timetable) {
		t.Errorf("timetable not persisted: %+v", loaded.Timetable)
	}
}
