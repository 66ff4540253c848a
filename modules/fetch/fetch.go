// Загрузка страниц расписания с сайта колледжа
package fetch

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"rasp.mgkct.by/teachersbot/modules/timetable"
)

// Адрес основного сайта (прод или тестовый)
var HeadURL = "https://mgkct.minskedu.gov.by"

const (
	DayURI  = "/персоналии/преподавателям/расписание-занятий-на-день"
	WeekURI = "/персоналии/преподавателям/расписание-занятий-на-неделю"

	// Потолок ожидания страницы
	pageTimeout = 2 * time.Minute
	// Пауза перед повтором, если контент ещё не доехал
	settleDelay = 2 * time.Second
)

type Fetcher struct {
	HeadURL string
	Client  *http.Client
}

func New(headURL string) *Fetcher {
	if headURL == "" {
		headURL = HeadURL
	}

	return &Fetcher{
		HeadURL: headURL,
		Client:  &http.Client{Timeout: pageTimeout},
	}
}

// Дневная страница целиком, для разбора
func (f *Fetcher) DayPage() (*goquery.Document, error) {
	return f.page(DayURI, timetable.DaySelector)
}

// Недельная страница целиком, для разбора и отрисовки
func (f *Fetcher) WeekPage() (*goquery.Document, error) {
	return f.page(WeekURI, timetable.WeekSelector)
}

// Загрузка страницы с одним повтором: сайт иногда отдаёт
// каркас без контейнера, через пару секунд контент на месте
func (f *Fetcher) page(uri string, selector string) (*goquery.Document, error) {
	doc, err := f.download(uri)
	if err != nil {
		return nil, err
	}
	if doc.Find(selector).Length() == 0 {
		time.Sleep(settleDelay)
		doc, err = f.download(uri)
		if err != nil {
			return nil, err
		}
	}

	return doc, nil
}

func (f *Fetcher) download(uri string) (*goquery.Document, error) {
	req, err := http.NewRequest("GET", f.HeadURL+uri, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Add("User-Agent", "Mozilla/5.0")

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("responce %s: %s", resp.Status, req.URL)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

// DaySignature - видимый текст дневного контейнера. Сравнивается со
// значением прошлого цикла, чтобы не гонять разбор без изменений
func DaySignature(doc *goquery.Document) string {
	return signature(doc, timetable.DaySelector)
}

func WeekSignature(doc *goquery.Document) string {
	return signature(doc, timetable.WeekSelector)
}

func signature(doc *goquery.Document, selector string) string {
	return strings.TrimSpace(doc.Find(selector).Text())
}
