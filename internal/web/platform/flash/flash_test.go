package flash

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestWriteAndReadRoundTrip(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Write(rr, httptest.NewRequest(http.MethodGet, "/", nil), NoticeSuccess("scan started"))

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != CookieName {
		t.Fatalf("cookies = %+v", cookies)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	clearRR := httptest.NewRecorder()
	notice, ok := ReadAndClear(clearRR, req)
	if !ok {
		t.Fatal("notice not read back")
	}
	if notice.Kind != KindSuccess || notice.Message != "scan started" {
		t.Fatalf("notice = %+v", notice)
	}

	cleared := clearRR.Result().Cookies()
	if len(cleared) != 1 || cleared[0].MaxAge != -1 {
		t.Fatalf("clear cookie = %+v", cleared)
	}
}

func TestWriteIgnoresBlankAndUnknownNotices(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	Write(rr, nil, Notice{Kind: KindError, Message: "   "})
	Write(rr, nil, Notice{Kind: Kind("shout"), Message: "hello"})
	if got := len(rr.Result().Cookies()); got != 0 {
		t.Fatalf("cookies = %d", got)
	}
}

func TestReadAndClearRejectsGarbage(t *testing.T) {
	t.Parallel()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "%%%not-base64"})
	if _, ok := ReadAndClear(httptest.NewRecorder(), req); ok {
		t.Fatal("garbage cookie decoded")
	}
}
