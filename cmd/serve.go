package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"
	"github.com/jsphweid/gosoul/codec"
	"github.com/jsphweid/gosoul/constants"
	"github.com/jsphweid/gosoul/db"
	"github.com/jsphweid/gosoul/midi"
	"github.com/jsphweid/gosoul/model"
	"github.com/jsphweid/gosoul/score"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const maxBody = 1 << 20

var serveAddr string

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", constants.GetListenAddr(), "address to listen on (LISTEN_ADDR)")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the encoder and song library over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		lib, err := db.New()
		if err != nil {
			log.Fatal("could not open song library", "err", err)
		}
		log.Info("listening", "addr", serveAddr)
		log.Fatal(http.ListenAndServe(serveAddr, cors.Default().Handler(NewRouter(lib))))
	},
}

// SongStore is the part of db.Library the server needs.
type SongStore interface {
	Save(ctx context.Context, song db.Song) (db.Song, error)
	Get(ctx context.Context, id string) (db.Song, error)
}

type AppendRequestBody struct {
	Base score.Document `json:"base"`
	Tail score.Document `json:"tail"`
}

func NewRouter(store SongStore) *mux.Router {
	s := server{store: store}
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/encode", HandleEncode).Methods("POST")
	router.HandleFunc("/decode", HandleDecode).Methods("POST")
	router.HandleFunc("/append", HandleAppend).Methods("POST")
	router.HandleFunc("/songs", s.handleSaveSong).Methods("POST")
	router.HandleFunc("/songs/{id}", s.handleGetSong).Methods("GET")
	return router
}

type server struct {
	store SongStore
}

func writeError(w http.ResponseWriter, status int, err error) {
	if status >= 500 {
		log.Error("request failed", "err", err)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(model.ErrorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeMidi(w http.ResponseWriter, data []byte) {
	w.Header().Set("Content-Type", "audio/midi")
	w.Write(data)
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBody))
}

// decodeMidi reads a .mid body. ?strict=true rejects malformed note events.
func decodeMidi(r *http.Request, data []byte) (*model.Sequence, error) {
	stream, err := midi.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	d := codec.Decoder{Strict: r.URL.Query().Get("strict") == "true"}
	return d.Decode(stream)
}

func encodeMidi(seq *model.Sequence) ([]byte, error) {
	stream, err := codec.Encode(seq)
	if err != nil {
		return nil, err
	}
	return midi.Bytes(stream)
}

// HandleEncode turns a JSON or YAML score into a MIDI file.
func HandleEncode(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	doc, err := score.Parse(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	seq, err := doc.Sequence()
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	data, err := encodeMidi(seq)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeMidi(w, data)
}

// HandleDecode turns a MIDI file into a JSON score.
func HandleDecode(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	seq, err := decodeMidi(r, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, score.FromSequence(seq))
}

// HandleAppend appends tail to base track by track and returns the result.
func HandleAppend(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	var input AppendRequestBody
	if err := json.Unmarshal(body, &input); err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "could not unmarshal request body"))
		return
	}
	base, err := input.Base.Sequence()
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "base"))
		return
	}
	tail, err := input.Tail.Sequence()
	if err != nil {
		writeError(w, http.StatusBadRequest, errors.Wrap(err, "tail"))
		return
	}
	if err := base.Append(tail); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, score.FromSequence(base))
}

func (s server) handleSaveSong(w http.ResponseWriter, r *http.Request) {
	body, err := readBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	seq, err := decodeMidi(r, body)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	song, err := s.store.Save(r.Context(), db.Song{
		Name:   r.URL.Query().Get("name"),
		Tracks: seq.NumTracks(),
		Tempo:  seq.Tempo(),
		Data:   body,
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusCreated, model.SongResponse{Id: song.Id, Tracks: song.Tracks, Bytes: len(song.Data)})
}

func (s server) handleGetSong(w http.ResponseWriter, r *http.Request) {
	song, err := s.store.Get(r.Context(), mux.Vars(r)["id"])
	if errors.Is(err, db.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeMidi(w, song.Data)
}
