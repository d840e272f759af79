package model

import "time"

// SessionDescription carries an SDP offer or answer verbatim. The
// server only relays it; media negotiation happens entirely between the
// two peers.
type SessionDescription struct {
	Type string `json:"type" bson:"type"`
	SDP  string `json:"sdp" bson:"sdp"`
}

// ICECandidate is one candidate from either side of the handshake.
type ICECandidate struct {
	Candidate     string `json:"candidate" bson:"candidate"`
	SDPMid        string `json:"sdpMid,omitempty" bson:"sdpMid,omitempty"`
	SDPMLineIndex int    `json:"sdpMLineIndex" bson:"sdpMLineIndex"`
}

// Call is the signaling document for a chat pair's peer call: the
// caller's offer, the callee's answer, and the ICE candidates gathered
// on each side. One call per chat at a time.
type Call struct {
	ChatID           string              `json:"chatId" bson:"_id"`
	CallerID         string              `json:"callerId" bson:"callerId"`
	Offer            *SessionDescription `json:"offer,omitempty" bson:"offer,omitempty"`
	Answer           *SessionDescription `json:"answer,omitempty" bson:"answer,omitempty"`
	OfferCandidates  []ICECandidate      `json:"offerCandidates,omitempty" bson:"offerCandidates,omitempty"`
	AnswerCandidates []ICECandidate      `json:"answerCandidates,omitempty" bson:"answerCandidates,omitempty"`
	CreatedAt        time.Time           `json:"createdAt" bson:"createdAt"`
}
