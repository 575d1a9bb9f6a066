package handlers

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dojsystem/process-api/config"
)

// SignatureHandler signs direct-to-storage upload requests so the gateway
// can push large files to the blob store without proxying them through us.
type SignatureHandler struct {
	Config config.Config
}

// GenerateSignature generates a signature for direct blob uploads
func (s SignatureHandler) GenerateSignature(w http.ResponseWriter, r *http.Request) {
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	h := hmac.New(sha1.New, []byte(s.Config.Blob.APISecret))
	h.Write([]byte("folder=" + s.Config.Blob.Folder + "&timestamp=" + timestamp))
	signature := hex.EncodeToString(h.Sum(nil))

	response := map[string]string{
		"timestamp": timestamp,
		"folder":    s.Config.Blob.Folder,
		"signature": signature,
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}
