package sheets

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mumanal/actualizacion-datos/internal/domain/entity"
)

func registration() entity.Registration {
	return entity.Registration{
		FirstName:        "Ana",
		PaternalLastName: "Quispe",
		MaternalLastName: "Mamani",
		Email:            "ana@example.bo",
		CI:               "1234567",
	}
}

// scriptServer answers every request with status and body and records the last form it saw.
func scriptServer(t *testing.T, status int, body string, seen *url.Values) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
			assert.NoError(t, r.ParseForm())
			if seen != nil {
				*seen = r.PostForm
			}
		}
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestAddSendsFieldsAndAction(t *testing.T) {
	var seen url.Values
	srv := scriptServer(t, http.StatusOK, `{"success":true}`, &seen)
	c := NewClient(srv.URL, time.Second, false, nil)

	require.NoError(t, c.Add(context.Background(), registration()))
	assert.Equal(t, ActionAddUser, seen.Get("action"))
	assert.Equal(t, "Ana", seen.Get("firstName"))
	assert.Equal(t, "Quispe", seen.Get("paternalLastName"))
	assert.Equal(t, "Mamani", seen.Get("maternalLastName"))
	assert.Equal(t, "ana@example.bo", seen.Get("email"))
	assert.Equal(t, "1234567", seen.Get("ci"))
}

func TestAddRejectedUsesScriptMessage(t *testing.T) {
	srv := scriptServer(t, http.StatusOK, `{"success":false,"message":"CI duplicado"}`, nil)
	c := NewClient(srv.URL, time.Second, true, nil)

	err := c.Add(context.Background(), registration())
	require.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "CI duplicado")
}

func TestAddRejectedWithoutMessage(t *testing.T) {
	srv := scriptServer(t, http.StatusOK, `{"success":false}`, nil)
	c := NewClient(srv.URL, time.Second, true, nil)

	err := c.Add(context.Background(), registration())
	require.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), DefaultRejectMessage)
}

func TestAddNonJSONLenientVsStrict(t *testing.T) {
	srv := scriptServer(t, http.StatusOK, `<html><body>Moved</body></html>`, nil)

	lenient := NewClient(srv.URL, time.Second, true, nil)
	assert.NoError(t, lenient.Add(context.Background(), registration()))

	strict := NewClient(srv.URL, time.Second, false, nil)
	assert.ErrorIs(t, strict.Add(context.Background(), registration()), ErrUnparseableResponse)
}

func TestAddFollowsRedirect(t *testing.T) {
	target := scriptServer(t, http.StatusOK, `{"success":true}`, nil)
	redirector := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, target.URL, http.StatusFound)
	}))
	defer redirector.Close()

	c := NewClient(redirector.URL, time.Second, false, nil)
	assert.NoError(t, c.Add(context.Background(), registration()))
}

func TestNon2xxIsAlwaysAnError(t *testing.T) {
	srv := scriptServer(t, http.StatusInternalServerError, `oops`, nil)
	c := NewClient(srv.URL, time.Second, true, nil)

	assert.ErrorIs(t, c.Add(context.Background(), registration()), ErrUpstreamStatus)
	assert.ErrorIs(t, c.Delete(context.Background(), "3"), ErrUpstreamStatus)
}

func TestTransportFailure(t *testing.T) {
	srv := scriptServer(t, http.StatusOK, `{"success":true}`, nil)
	srv.Close()
	c := NewClient(srv.URL, time.Second, true, nil)

	err := c.Add(context.Background(), registration())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnparseableResponse)
}

func TestListDecodesMixedValueTypes(t *testing.T) {
	var seen url.Values
	srv := scriptServer(t, http.StatusOK, `{"success":true,"data":[
		{"id":2,"firstName":"Ana","paternalLastName":"Quispe","maternalLastName":"Mamani","email":"ana@example.bo","ci":1234567},
		{"id":"r-3","firstName":"Luis","paternalLastName":"Choque","maternalLastName":"Condori","email":"luis@example.bo","ci":"765 LP"}
	]}`, &seen)
	c := NewClient(srv.URL, time.Second, false, nil)

	users, err := c.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, ActionGetUsers, seen.Get("action"))
	require.Len(t, users, 2)
	assert.Equal(t, "2", users[0].ID)
	assert.Equal(t, "1234567", users[0].CI)
	assert.Equal(t, "r-3", users[1].ID)
	assert.Equal(t, "Luis", users[1].FirstName)
}

func TestListEmptyAndNonJSON(t *testing.T) {
	empty := scriptServer(t, http.StatusOK, `{"success":true}`, nil)
	users, err := NewClient(empty.URL, time.Second, true, nil).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, users)

	html := scriptServer(t, http.StatusOK, `<html></html>`, nil)
	_, err = NewClient(html.URL, time.Second, true, nil).List(context.Background())
	assert.ErrorIs(t, err, ErrUnparseableResponse)
}

func TestDeleteSendsID(t *testing.T) {
	var seen url.Values
	srv := scriptServer(t, http.StatusOK, `{"success":true}`, &seen)
	c := NewClient(srv.URL, time.Second, false, nil)

	require.NoError(t, c.Delete(context.Background(), "7"))
	assert.Equal(t, ActionDeleteUser, seen.Get("action"))
	assert.Equal(t, "7", seen.Get("id"))
}

func TestListLargeSheet(t *testing.T) {
	rows := make([]string, 0, 10000)
	for i := 0; i < 10000; i++ {
		rows = append(rows, `{"id":`+strconv.Itoa(i)+`,"firstName":"Ana","paternalLastName":"Quispe","maternalLastName":"Mamani","email":"ana@example.bo","ci":"1234567"}`)
	}
	body := `{"success":true,"data":[` + strings.Join(rows, ",") + `]}`
	require.Greater(t, len(body), 1<<20)
	srv := scriptServer(t, http.StatusOK, body, nil)

	users, err := NewClient(srv.URL, 5*time.Second, false, nil).List(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 10000)
	assert.Equal(t, "9999", users[9999].ID)
}

func TestAnswerOverLimitIsTooLarge(t *testing.T) {
	srv := scriptServer(t, http.StatusOK, `{"success":true,"data":[`+strings.Repeat(" ", 256)+`]}`, nil)
	c := NewClient(srv.URL, time.Second, true, nil)
	c.maxBody = 128

	_, err := c.List(context.Background())
	require.ErrorIs(t, err, ErrResponseTooLarge)
	assert.NotErrorIs(t, err, ErrUnparseableResponse)

	// a lenient write must not treat an oversized answer as accepted
	assert.ErrorIs(t, c.Add(context.Background(), registration()), ErrResponseTooLarge)
}
