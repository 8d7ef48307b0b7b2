package client

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
)

// =============================================================================
// Auth Operations
// =============================================================================

// Login authenticates with email and password. The returned token is not
// stored; call SetToken once the caller accepts the session.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	return resolve(c, "login",
		func() (*AuthResult, error) {
			var out AuthResult
			payload := map[string]string{"email": email, "password": password}
			if err := c.do(ctx, http.MethodPost, "/auth/login", payload, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func() (*AuthResult, error) {
			return demoAuth("", email), nil
		})
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	return resolve(c, "register",
		func() (*AuthResult, error) {
			var out AuthResult
			if err := c.do(ctx, http.MethodPost, "/auth/register", req, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func() (*AuthResult, error) {
			return demoAuth(req.Name, req.Email), nil
		})
}

// VerifyOTP confirms a one-time code sent to the given email.
func (c *Client) VerifyOTP(ctx context.Context, email, otp string) (*OTPResult, error) {
	return resolve(c, "verify-otp",
		func() (*OTPResult, error) {
			var out OTPResult
			payload := map[string]string{"email": email, "otp": otp}
			if err := c.do(ctx, http.MethodPost, "/auth/verify-otp", payload, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func() (*OTPResult, error) {
			return &OTPResult{Success: true, Message: "verified in offline mode"}, nil
		})
}

// =============================================================================
// Profile Operations
// =============================================================================

// GetProfile fetches the current user's profile.
func (c *Client) GetProfile(ctx context.Context) (*Profile, error) {
	return resolve(c, "get-profile",
		func() (*Profile, error) {
			var out Profile
			if err := c.do(ctx, http.MethodGet, "/user/profile", nil, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func() (*Profile, error) {
			return demoProfile(), nil
		})
}

// UpdateProfile applies a partial profile update. The payload is passed
// through untouched; field validation is the backend's concern.
func (c *Client) UpdateProfile(ctx context.Context, updates any) (*UpdateProfileResult, error) {
	return resolve(c, "update-profile",
		func() (*UpdateProfileResult, error) {
			var out UpdateProfileResult
			if err := c.do(ctx, http.MethodPut, "/user/profile", updates, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func() (*UpdateProfileResult, error) {
			fields, err := echoFields(updates)
			if err != nil {
				return nil, err
			}
			return &UpdateProfileResult{Success: true, Data: fields}, nil
		})
}

// UploadKYC submits an identity document for verification.
func (c *Client) UploadKYC(ctx context.Context, doc KYCDocument) (*KYCResult, error) {
	return resolve(c, "upload-kyc",
		func() (*KYCResult, error) {
			var out KYCResult
			if err := c.doMultipart(ctx, "/user/kyc", doc, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func() (*KYCResult, error) {
			return &KYCResult{Success: true, Message: "document queued for verification"}, nil
		})
}

// =============================================================================
// Location Operations
// =============================================================================

// UpdateLocation reports the user's current position.
func (c *Client) UpdateLocation(ctx context.Context, lat, lng float64) (*LocationUpdateResult, error) {
	return resolve(c, "update-location",
		func() (*LocationUpdateResult, error) {
			var out LocationUpdateResult
			payload := map[string]float64{"lat": lat, "lng": lng}
			if err := c.do(ctx, http.MethodPost, "/location/update", payload, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func() (*LocationUpdateResult, error) {
			return &LocationUpdateResult{Success: true}, nil
		})
}

// GetLocationHistory fetches recently tracked positions.
func (c *Client) GetLocationHistory(ctx context.Context) (*LocationHistory, error) {
	return resolve(c, "location-history",
		func() (*LocationHistory, error) {
			var out LocationHistory
			if err := c.do(ctx, http.MethodGet, "/location/history", nil, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func() (*LocationHistory, error) {
			return demoLocationHistory(time.Now()), nil
		})
}

// =============================================================================
// Alert Operations
// =============================================================================

// SendPanicAlert raises an emergency alert.
func (c *Client) SendPanicAlert(ctx context.Context, alert PanicAlert) (*PanicResult, error) {
	return resolve(c, "panic-alert",
		func() (*PanicResult, error) {
			var out PanicResult
			if err := c.do(ctx, http.MethodPost, "/alerts/panic", alert, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func() (*PanicResult, error) {
			return &PanicResult{
				Success: true,
				AlertID: uuid.NewString(),
				Message: "alert recorded locally, will reach responders once online",
			}, nil
		})
}

// GetAlertHistory fetches past alerts.
func (c *Client) GetAlertHistory(ctx context.Context) (*AlertHistory, error) {
	return resolve(c, "alert-history",
		func() (*AlertHistory, error) {
			var out AlertHistory
			if err := c.do(ctx, http.MethodGet, "/alerts/history", nil, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func() (*AlertHistory, error) {
			return demoAlertHistory(time.Now()), nil
		})
}

// =============================================================================
// Digital Identity Operations
// =============================================================================

// IssueDigitalID mints a blockchain-backed digital identity for the user.
func (c *Client) IssueDigitalID(ctx context.Context) (*DigitalID, error) {
	return resolve(c, "issue-digital-id",
		func() (*DigitalID, error) {
			var out DigitalID
			if err := c.do(ctx, http.MethodPost, "/blockchain/issue-id", nil, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func() (*DigitalID, error) {
			return demoDigitalID(), nil
		})
}

// GetQRCode fetches the QR payload for an issued digital identity.
func (c *Client) GetQRCode(ctx context.Context, id string) (*QRCodeResult, error) {
	return resolve(c, "get-qr-code",
		func() (*QRCodeResult, error) {
			var out QRCodeResult
			if err := c.do(ctx, http.MethodGet, "/blockchain/qr/"+id, nil, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func() (*QRCodeResult, error) {
			return &QRCodeResult{QRCode: "guardian://id/" + id}, nil
		})
}

// =============================================================================
// Safety Operations
// =============================================================================

// GetSafetyScore fetches the AI safety assessment for the user's area.
func (c *Client) GetSafetyScore(ctx context.Context) (*SafetyScore, error) {
	return resolve(c, "safety-score",
		func() (*SafetyScore, error) {
			var out SafetyScore
			if err := c.do(ctx, http.MethodGet, "/ai/safety-score", nil, &out); err != nil {
				return nil, err
			}
			return &out, nil
		},
		func() (*SafetyScore, error) {
			return demoSafetyScore(), nil
		})
}
