package main

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/zerolog/log"
	"github.com/skip2/go-qrcode"
)

// The gateway validates IDs and routes actions; any caller presenting a
// known player ID may act as that player. Authentication is a non-goal.

type registerPlayerRequest struct {
	Name string `json:"name,omitempty"`
}

type registerPlayerResponse struct {
	ID   PlayerID `json:"id"`
	Name string   `json:"name"`
}

type feedMeRequest struct {
	ID PlayerID `json:"id"`
}

type feedMeResponse struct {
	Score uint64 `json:"score"`
}

type noseGoesRequest struct {
	ID PlayerID `json:"id"`
}

type noseGoesResponse struct {
	Result Fate `json:"result"`
}

type listedPlayer struct {
	ID    PlayerID `json:"id"`
	Name  string   `json:"name"`
	Score uint64   `json:"score"`
}

type listPlayersResponse struct {
	Players []listedPlayer `json:"players"`
}

func decodeInto(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		apiError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

func writeJSON(cfg *Config, w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	securityHeaders(cfg, w)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func registerPlayer(cfg *Config, s *Session) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req registerPlayerRequest
		if body, err := io.ReadAll(r.Body); err == nil && len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				apiError(w, http.StatusBadRequest, "malformed request body")
				return
			}
		}

		p := s.Register(strings.TrimSpace(req.Name))
		log.Debug().Stringer("player", p.ID).Str("ip", realIP(r)).Msg("SERVE: registration")

		writeJSON(cfg, w, http.StatusOK, registerPlayerResponse{ID: p.ID, Name: p.Name})
	}
}

func feedMe(cfg *Config, s *Session) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req feedMeRequest
		if !decodeInto(w, r, &req) {
			return
		}

		score, err := s.Feed(req.ID)
		if err != nil {
			log.Debug().Err(err).Stringer("player", req.ID).Str("ip", realIP(r)).Msg("SERVE: feed rejected")
			apiError(w, rejectionStatus(err), err.Error())
			return
		}

		writeJSON(cfg, w, http.StatusOK, feedMeResponse{Score: score})
	}
}

func noseGoes(cfg *Config, s *Session) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var req noseGoesRequest
		if !decodeInto(w, r, &req) {
			return
		}

		fate, err := s.Respond(req.ID)
		if err != nil {
			apiError(w, rejectionStatus(err), err.Error())
			return
		}

		writeJSON(cfg, w, http.StatusOK, noseGoesResponse{Result: fate})
	}
}

func listPlayers(cfg *Config, s *Session) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		players := s.Players()

		resp := listPlayersResponse{Players: make([]listedPlayer, 0, len(players))}
		for _, p := range players {
			resp.Players = append(resp.Players, listedPlayer{ID: p.ID, Name: p.Name, Score: p.Score})
		}

		writeJSON(cfg, w, http.StatusOK, resp)
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// serveWS upgrades a push connection for one of the two audiences. Player
// connections may present their server-issued ID as ?id=N to be marked
// reconnected; losing the socket marks them disconnected again, and nothing
// else.
func serveWS(s *Session, aud audience) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		var id PlayerID
		hasID := false
		if raw := r.URL.Query().Get("id"); raw != "" && aud == audiencePlayers {
			parsed, err := strconv.ParseUint(raw, 10, 64)
			if err != nil {
				apiError(w, http.StatusBadRequest, "malformed player id")
				return
			}
			id = PlayerID(parsed)
			hasID = true
		}

		ws, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Debug().Err(err).Str("ip", realIP(r)).Msg("SERVE: upgrade failed")
			return
		}

		sub := s.Subscribe(wsConn{ws: ws}, aud, id, hasID)

		// Push-only channel: drain the read side until the peer goes away.
		go func() {
			defer func() {
				s.Unsubscribe(sub)
				_ = ws.Close()
			}()
			for {
				if _, _, err := ws.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}

// qrHandler generates a PNG QR code for the game URL, so phones around the
// host screen can join by pointing a camera at it.
func qrHandler(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}

	path := strings.TrimSuffix(r.URL.Path, "/qr")

	url := scheme + "://" + r.Host + path + "/"

	const qrSize = 320 // mobile-friendly size
	png, err := qrcode.Encode(url, qrcode.Medium, qrSize)
	if err != nil {
		http.Error(w, "qr generation failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	_, _ = w.Write(png)
}

// registerHippoGame wires the session's inbound actions and push channels:
//   - POST $prefix/api/register-player   → {id, name}
//   - POST $prefix/api/feed-me           → {score}
//   - POST $prefix/api/nose-goes-response → {result}
//   - GET  $prefix/api/list-players      → {players}
//   - GET  $prefix/ws/player[?id=N]      → player push channel
//   - GET  $prefix/ws/host               → host push channel
//   - GET  $prefix/qr                    → PNG QR code for the game URL
func registerHippoGame(cfg *Config, s *Session, mux *httprouter.Router) {
	mux.POST(cfg.prefix+"/api/register-player", registerPlayer(cfg, s))
	mux.POST(cfg.prefix+"/api/feed-me", feedMe(cfg, s))
	mux.POST(cfg.prefix+"/api/nose-goes-response", noseGoes(cfg, s))
	mux.GET(cfg.prefix+"/api/list-players", listPlayers(cfg, s))

	mux.GET(cfg.prefix+"/ws/player", serveWS(s, audiencePlayers))
	mux.GET(cfg.prefix+"/ws/host", serveWS(s, audienceHost))

	mux.GET(cfg.prefix+"/qr", qrHandler)
}
