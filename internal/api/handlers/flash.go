package handlers

import (
	"encoding/base64"
	"encoding/json"
	"net/http"

	"github.com/Tedbot2000/todo-genie/internal/api/views"
)

const flashCookieName = "flash"

// addFlash дописывает уведомление в cookie, чтобы показать его после редиректа
func addFlash(w http.ResponseWriter, r *http.Request, level string, message string) {
	notices := readFlash(r)
	notices = append(notices, views.Notice{Level: level, Message: message})

	body, err := json.Marshal(notices)
	if err != nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    base64.RawURLEncoding.EncodeToString(body),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// popFlash читает и сразу удаляет уведомления
func popFlash(w http.ResponseWriter, r *http.Request) []views.Notice {
	notices := readFlash(r)
	if len(notices) > 0 {
		http.SetCookie(w, &http.Cookie{
			Name:     flashCookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return notices
}

func readFlash(r *http.Request) []views.Notice {
	cookies := r.CookiesNamed(flashCookieName)
	if len(cookies) == 0 {
		return nil
	}
	// последняя cookie - самая свежая
	body, err := base64.RawURLEncoding.DecodeString(cookies[len(cookies)-1].Value)
	if err != nil {
		return nil
	}

	var notices []views.Notice
	if err := json.Unmarshal(body, &notices); err != nil {
		return nil
	}
	return notices
}
