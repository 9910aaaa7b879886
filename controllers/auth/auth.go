package authController

import (
	"log"

	"saathi/config"
	"saathi/database"
	"saathi/middleware"
	"saathi/models"
	"saathi/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Register creates a learner account and signs them in
func Register(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegister").(*struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Language string `json:"language"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	// Check if username or email already exists
	if err := db.Where("username = ? OR email = ?", reqData.Username, reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username or email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		Username: reqData.Username,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Language: reqData.Language,
		Role:     models.RoleUser,
	}

	if err := db.Create(&newUser).Error; err != nil {
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register user!", nil)
	}

	// Sync the registration to the partner CRM without holding the request
	go utils.SyncRegistration(newUser.Username, newUser.Email, string(newUser.Role))
	utils.SendWelcomeEmail(newUser.Email, newUser.Username)

	token, err := middleware.GenerateJWT(newUser.ID, newUser.Role)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}
	middleware.SetTokenCookie(c, token)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", fiber.Map{
		"user": fiber.Map{
			"id":       newUser.ID,
			"username": newUser.Username,
			"email":    newUser.Email,
			"role":     newUser.Role,
		},
		"token": token,
	})
}

// RegisterTeacher creates a trainer or mentor account (admin only)
func RegisterTeacher(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedRegisterTeacher").(*struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Role     string `json:"role"`
		Language string `json:"language"`
		Bio      string `json:"bio"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	if err := db.Where("username = ? OR email = ?", reqData.Username, reqData.Email).First(&models.Teacher{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Username or email already in use!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newTeacher := models.Teacher{
		Username: reqData.Username,
		Email:    reqData.Email,
		Password: string(hashedPassword),
		Role:     models.Role(reqData.Role),
		Language: reqData.Language,
		Bio:      reqData.Bio,
	}

	if err := db.Create(&newTeacher).Error; err != nil {
		log.Printf("Error saving teacher to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to register teacher!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Teacher registered successfully.", fiber.Map{
		"id":       newTeacher.ID,
		"username": newTeacher.Username,
		"email":    newTeacher.Email,
		"role":     newTeacher.Role,
		"language": newTeacher.Language,
		"bio":      newTeacher.Bio,
	})
}

// Login authenticates against the table the supplied role implies and sets
// the jwt cookie. Username or email both work.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Role     string `json:"role"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	role := models.Role(reqData.Role)
	query := "(username = ? OR email = ?) AND is_deleted = ?"

	var id uint
	var hashed string
	var actualRole models.Role
	var authSource string
	var profile fiber.Map

	switch {
	case models.IsLearnerRole(role):
		var user models.User
		if err := db.Where(query, reqData.Username, reqData.Username, false).First(&user).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid username/email or password!", nil)
		}
		id, hashed, actualRole, authSource = user.ID, user.Password, user.Role, "user"
		profile = fiber.Map{
			"email":          user.Email,
			"language":       user.Language,
			"profilePicture": user.ProfilePicture,
			"username":       user.Username,
		}
	case models.IsTeacherRole(role):
		var teacher models.Teacher
		if err := db.Where(query, reqData.Username, reqData.Username, false).First(&teacher).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid username/email or password!", nil)
		}
		id, hashed, actualRole, authSource = teacher.ID, teacher.Password, teacher.Role, "teacher"
		profile = fiber.Map{
			"email":    teacher.Email,
			"language": teacher.Language,
			"bio":      teacher.Bio,
			"username": teacher.Username,
		}
	case role == models.RoleAdmin:
		var admin models.Admin
		if err := db.Where(query, reqData.Username, reqData.Username, false).First(&admin).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid username/email or password!", nil)
		}
		id, hashed, actualRole, authSource = admin.ID, admin.Password, models.RoleAdmin, "admin"
		profile = fiber.Map{"username": admin.Username}
	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid role!", nil)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid username/email or password!", nil)
	}

	token, err := middleware.GenerateJWT(id, actualRole)
	if err != nil {
		log.Printf("Error generating token: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token!", nil)
	}
	middleware.SetTokenCookie(c, token)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful!", fiber.Map{
		"id":         id,
		"role":       actualRole,
		"authSource": authSource,
		"token":      token,
		"profile":    profile,
	})
}

// Logout clears the jwt cookie
func Logout(c *fiber.Ctx) error {
	middleware.ClearTokenCookie(c)
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Logged out successfully!", nil)
}
