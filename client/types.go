package client

import "time"

// User roles. Authority accounts see the monitoring side of the app;
// tourists get the standard experience.
const (
	RoleTourist   = "tourist"
	RoleAuthority = "authority"
)

// User is the authenticated account returned by auth operations.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Phone string `json:"phone,omitempty"`
}

// AuthResult is the response shape of login and registration.
type AuthResult struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

// RegisterRequest is the payload for account registration.
type RegisterRequest struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	Phone            string `json:"phone,omitempty"`
	EmergencyContact string `json:"emergencyContact,omitempty"`
}

// OTPResult is the response shape of one-time-code verification.
type OTPResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Profile is the user's stored profile record.
type Profile struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Email            string `json:"email"`
	Phone            string `json:"phone,omitempty"`
	EmergencyContact string `json:"emergencyContact,omitempty"`
	KYCVerified      bool   `json:"kycVerified"`
}

// UpdateProfileResult acknowledges a profile update, echoing the applied
// fields.
type UpdateProfileResult struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data"`
}

// KYCDocument is an identity document submitted for verification.
type KYCDocument struct {
	FileName     string
	ContentType  string
	DocumentType string
	Data         []byte
}

// KYCResult acknowledges a document upload.
type KYCResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Location is a single tracked position.
type Location struct {
	Lat       float64   `json:"lat"`
	Lng       float64   `json:"lng"`
	Label     string    `json:"label,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// LocationUpdateResult acknowledges a position report.
type LocationUpdateResult struct {
	Success bool `json:"success"`
}

// LocationHistory is the list of recently tracked positions, oldest first.
type LocationHistory struct {
	Locations []Location `json:"locations"`
}

// PanicAlert is the payload of an emergency alert.
type PanicAlert struct {
	Type    string   `json:"type"`
	Message string   `json:"message,omitempty"`
	Lat     *float64 `json:"lat,omitempty"`
	Lng     *float64 `json:"lng,omitempty"`
}

// PanicResult acknowledges an emergency alert.
type PanicResult struct {
	Success bool   `json:"success"`
	AlertID string `json:"alertId"`
	Message string `json:"message"`
}

// Alert is a past emergency alert.
type Alert struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Message   string    `json:"message,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// AlertHistory is the list of past alerts, oldest first.
type AlertHistory struct {
	Alerts []Alert `json:"alerts"`
}

// DigitalID is an issued blockchain-backed digital identity.
type DigitalID struct {
	QRCode    string `json:"qrCode"`
	DigitalID string `json:"digitalId"`
}

// QRCodeResult carries the QR payload for an existing digital identity.
type QRCodeResult struct {
	QRCode string `json:"qrCode"`
}

// SafetyScore is the AI-computed safety assessment for the user's area.
type SafetyScore struct {
	SafetyScore int      `json:"safetyScore"`
	Factors     []string `json:"factors"`
}
