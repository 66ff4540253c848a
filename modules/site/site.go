// Служебный HTTP-интерфейс: статус и картинки недельного расписания
package site

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/gorilla/mux"

	"rasp.mgkct.by/teachersbot/modules/timetable"
)

type Server struct {
	Snapshot  *timetable.Holder
	ImgPath   string
	LastCheck func() time.Time
}

func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/status", s.GetStatus)
	r.HandleFunc("/img/{teacher}", s.GetWeekImg)

	return r
}

type status struct {
	Date      string    `json:"date"`
	Teachers  int       `json:"teachers"`
	LastCheck time.Time `json:"last_check"`
}

func (s *Server) GetStatus(w http.ResponseWriter, r *http.Request) {
	var st status
	if tt := s.Snapshot.Get(); tt != nil {
		st.Date = tt.Date
		st.Teachers = len(tt.TeacherInfos)
	}
	if s.LastCheck != nil {
		st.LastCheck = s.LastCheck()
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(st); err != nil {
		http.Error(w, "", http.StatusInternalServerError)
	}
}

func (s *Server) GetWeekImg(w http.ResponseWriter, r *http.Request) {
	teacher := mux.Vars(r)["teacher"]

	filePath := filepath.Join(s.ImgPath, teacher+".jpg")
	fileContent, err := os.ReadFile(filePath)
	if err != nil {
		http.Error(w, "Файл не найден", http.StatusNotFound)

		return
	}

	w.Header().Set("Content-Type", "image/jpeg")
	w.Header().Set(
		"Content-Disposition",
		fmt.Sprintf("inline; filename=\"%s.jpg\"", teacher),
	)
	if _, err := w.Write(fileContent); err != nil {
		http.Error(w, "", http.StatusInternalServerError)
	}
}
