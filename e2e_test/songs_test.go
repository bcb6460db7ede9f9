//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gorilla/mux"
	"github.com/jsphweid/gosoul/cmd"
	"github.com/jsphweid/gosoul/db"
	"github.com/jsphweid/gosoul/model"
	"github.com/stretchr/testify/assert"
)

// Needs DynamoDB local on DYNAMODB_ENDPOINT with a SONG_TABLE keyed by PK.
var router *mux.Router

func TestMain(m *testing.M) {
	lib, err := db.New()
	if err != nil {
		panic(err.Error())
	}
	router = cmd.NewRouter(lib)

	exitVal := m.Run()

	os.Exit(exitVal)
}

func post(target string, body []byte) *http.Response {
	req := httptest.NewRequest(http.MethodPost, target, bytes.NewReader(body))
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w.Result()
}

func TestStoreAndFetchSongE2E(t *testing.T) {
	assert := assert.New(t)

	score := []byte(`{"tempo": 150, "tracks": [{"elements": [{"chord": "C4 E4 G4"}]}, {"instrument": "Cello", "elements": [{"note": "C3"}]}]}`)
	resp := post("/encode", score)
	assert.Equal(200, resp.StatusCode)
	mid, _ := io.ReadAll(resp.Body)

	resp = post("/songs?name=e2e", mid)
	assert.Equal(201, resp.StatusCode)
	respBody, _ := io.ReadAll(resp.Body)

	var saved model.SongResponse
	err := json.Unmarshal(respBody, &saved)
	if err != nil {
		panic(err.Error())
	}
	assert.Equal(2, saved.Tracks)
	assert.Equal(len(mid), saved.Bytes)

	req := httptest.NewRequest(http.MethodGet, "/songs/"+saved.Id, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	resp = w.Result()
	assert.Equal(200, resp.StatusCode)
	fetched, _ := io.ReadAll(resp.Body)
	assert.Equal(mid, fetched)
}

func TestMissingSongE2E(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/songs/00000000-0000-0000-0000-000000000000", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, 404, w.Result().StatusCode)
}
