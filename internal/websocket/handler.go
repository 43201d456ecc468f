package websocket

import (
	"log"
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/rowanhale/seatwell/internal/auth"
)

// HandleWebSocket upgrades a staff connection and runs it as a hub client
// in the room of the session's wedding. Must run behind RequireStaff.
func HandleWebSocket(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sc, ok := auth.StaffFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // Staff scan apps connect from venue networks
		})
		if err != nil {
			log.Printf("websocket: accept: %v", err)
			return
		}

		client := NewClient(hub, conn, sc.WeddingID)
		client.Run(r.Context())
	}
}
