//go:build e2e
// +build e2e

package e2e

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// These tests run against a live server and a live MongoDB; they exercise
// the full HTTP surface minus the OTP delivery hop (codes go out by mail, so
// accounts are seeded directly and the staged-registration endpoints are
// checked up to the point the code would arrive).

const (
	defaultBaseURL = "http://localhost:8080/api/v1"
	defaultMongo   = "mongodb://localhost:27017"
	defaultDBName  = "eduport_e2e"

	studentEmail = "e2e_student@example.com"
	studentPass  = "password123"
	facultyEmail = "e2e_faculty@example.com"
	facultyPass  = "password123"
)

var (
	baseURL      string
	studentToken string
	facultyToken string
	facultyID    string
	courseID     string
)

func TestMain(m *testing.M) {
	_ = godotenv.Load("../../.env")

	baseURL = os.Getenv("BASE_URL")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	if err := seedAccounts(); err != nil {
		fmt.Printf("Setup failed: %v\n", err)
		os.Exit(1)
	}

	os.Exit(m.Run())
}

func seedAccounts() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		uri = defaultMongo
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = defaultDBName
	}

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return fmt.Errorf("mongo connect: %w", err)
	}
	defer client.Disconnect(context.Background())

	db := client.Database(dbName)

	// Cleanup previous test data.
	for _, col := range []string{"students", "faculties", "universityCourses", "studentAttendance", "studentsFeedbacks"} {
		if _, err := db.Collection(col).DeleteMany(ctx, bson.M{}); err != nil {
			return fmt.Errorf("cleanup %s: %w", col, err)
		}
	}

	now := time.Now().UTC()
	hash, _ := bcrypt.GenerateFromPassword([]byte(studentPass), bcrypt.DefaultCost)

	_, err = db.Collection("students").InsertOne(ctx, bson.M{
		"fName":       "E2E Student",
		"username":    "e2e_student",
		"email":       studentEmail,
		"password":    string(hash),
		"collegeRoll": "E2E-100",
		"role":        "Student",
		"createdAt":   now,
	})
	if err != nil {
		return fmt.Errorf("seed student: %w", err)
	}

	facultyHash, _ := bcrypt.GenerateFromPassword([]byte(facultyPass), bcrypt.DefaultCost)
	res, err := db.Collection("faculties").InsertOne(ctx, bson.M{
		"facultyName": "E2E Faculty",
		"email":       facultyEmail,
		"password":    string(facultyHash),
		"facultyId":   "FAC-E2E-1",
		"role":        "Faculty",
		"joiningDate": now,
	})
	if err != nil {
		return fmt.Errorf("seed faculty: %w", err)
	}
	facultyID = res.InsertedID.(primitive.ObjectID).Hex()

	return nil
}

func post(path string, payload interface{}, token string) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest(http.MethodPost, baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return http.DefaultClient.Do(req)
}

func do(method, path string, payload interface{}, token string) (*http.Response, error) {
	var reader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequest(method, baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return http.DefaultClient.Do(req)
}

func readBody(resp *http.Response) string {
	b, _ := io.ReadAll(resp.Body)
	return string(b)
}

func decodeJSON(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestE2EFlow(t *testing.T) {
	// Step 1: Student login with seeded credentials.
	t.Run("StudentLogin", func(t *testing.T) {
		resp, err := post("/auth/student-login", map[string]interface{}{
			"email":    studentEmail,
			"password": studentPass,
		}, "")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				Token string `json:"token"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		studentToken = body.Data.Token
		if studentToken == "" {
			t.Fatal("token missing")
		}
	})

	t.Run("StudentLoginWrongPassword", func(t *testing.T) {
		resp, err := post("/auth/student-login", map[string]interface{}{
			"email":    studentEmail,
			"password": "not-the-password",
		}, "")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	t.Run("FacultyLogin", func(t *testing.T) {
		resp, err := post("/auth/faculty-login", map[string]interface{}{
			"email":    facultyEmail,
			"password": facultyPass,
		}, "")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				Token string `json:"token"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		facultyToken = body.Data.Token
		if facultyToken == "" {
			t.Fatal("token missing")
		}
	})

	// Step 2: Registration stages a code; the email hop cannot be followed
	// here, so only the staged half is checked.
	t.Run("RegisterStagesCode", func(t *testing.T) {
		resp, err := post("/auth/student-register", map[string]interface{}{
			"name":          "New Student",
			"username":      "new_student",
			"email":         "new_student@example.com",
			"password":      "password123",
			"college_roll":  "E2E-101",
			"profile_photo": "https://cdn.example.com/p.png",
		}, "")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		// 201 when SMTP is configured for the server under test, 502 when not.
		if resp.StatusCode != http.StatusCreated && resp.StatusCode != http.StatusBadGateway {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	t.Run("VerifyWrongOTP", func(t *testing.T) {
		resp, err := post("/auth/student-register-verify-otp", map[string]interface{}{
			"email": "new_student@example.com",
			"otp":   "00000",
		}, "")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	// Step 3: Profile.
	t.Run("GetProfile", func(t *testing.T) {
		resp, err := do(http.MethodGet, "/profile/student-profile", nil, studentToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				Student struct {
					Email string `json:"email"`
				} `json:"student"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		if body.Data.Student.Email != studentEmail {
			t.Fatalf("profile email = %q", body.Data.Student.Email)
		}
	})

	t.Run("GetProfileNoToken", func(t *testing.T) {
		resp, err := do(http.MethodGet, "/profile/student-profile", nil, "")
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusUnauthorized {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	t.Run("UpdateProfile", func(t *testing.T) {
		resp, err := do(http.MethodPut, "/profile/update-profile", map[string]interface{}{
			"bio":      "Updated by e2e",
			"location": "Campus",
		}, studentToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	// Step 4: Courses (faculty mutates, student reads).
	t.Run("CreateCourse", func(t *testing.T) {
		resp, err := post("/courses", map[string]interface{}{
			"name":             "E2E Systems",
			"code":             "E2E-301",
			"department":       "CSE",
			"description":      "End to end course",
			"credits":          3,
			"credits_details":  "3-0-0",
			"faculty_assigned": facultyID,
			"semester":         "Fall 2026",
			"schedule":         "MWF 10:00",
			"available_seats":  40,
			"class_times":      []string{"Mon 10:00", "Wed 10:00"},
		}, facultyToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}

		var body struct {
			Data struct {
				Course struct {
					ID string `json:"id"`
				} `json:"course"`
			} `json:"data"`
		}
		decodeJSON(t, resp, &body)
		courseID = body.Data.Course.ID
		if courseID == "" {
			t.Fatal("course id missing")
		}
	})

	t.Run("StudentCannotCreateCourse", func(t *testing.T) {
		resp, err := post("/courses", map[string]interface{}{
			"name":             "Forbidden",
			"code":             "NOPE-1",
			"department":       "CSE",
			"description":      "Should fail",
			"credits":          3,
			"credits_details":  "3-0-0",
			"faculty_assigned": facultyID,
			"semester":         "Fall 2026",
			"schedule":         "TT 9:00",
			"class_times":      []string{"Tue 9:00"},
		}, studentToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	t.Run("ListCourses", func(t *testing.T) {
		resp, err := do(http.MethodGet, "/courses", nil, studentToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	// Step 5: Feedback.
	t.Run("SubmitFeedback", func(t *testing.T) {
		resp, err := post("/feedback", map[string]interface{}{
			"rating":  5,
			"comment": "Smooth end to end run.",
		}, studentToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	t.Run("FacultyCannotSubmitFeedback", func(t *testing.T) {
		resp, err := post("/feedback", map[string]interface{}{
			"rating":  1,
			"comment": "Should be rejected.",
		}, facultyToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
	})

	// Step 6: Admin surface is forbidden to non-admin tokens.
	t.Run("AdminUsersForbidden", func(t *testing.T) {
		resp, err := do(http.MethodGet, "/admin/users", nil, studentToken)
		if err != nil {
			t.Fatalf("request failed: %v", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusForbidden {
			t.Fatalf("status %d: %s", resp.StatusCode, readBody(resp))
		}
	})
}
