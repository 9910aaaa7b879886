package userController

import (
	"log"

	"saathi/database"
	"saathi/middleware"
	"saathi/models"
	"saathi/models/course"
	"saathi/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetProfile returns the authenticated identity's profile
func GetProfile(c *fiber.Ctx) error {
	role, _ := c.Locals("role").(models.Role)

	if role == models.RoleAdmin {
		admin, ok := c.Locals("admin").(*models.Admin)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Admin not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
			"id":       admin.ID,
			"username": admin.Username,
			"role":     models.RoleAdmin,
		})
	}

	if models.IsTeacherRole(role) {
		teacher, ok := c.Locals("teacher").(*models.Teacher)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Teacher not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
			"id":       teacher.ID,
			"username": teacher.Username,
			"email":    teacher.Email,
			"role":     teacher.Role,
			"language": teacher.Language,
			"bio":      teacher.Bio,
		})
	}

	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully!", fiber.Map{
		"id":             user.ID,
		"username":       user.Username,
		"email":          user.Email,
		"role":           user.Role,
		"language":       user.Language,
		"profilePicture": user.ProfilePicture,
	})
}

// UpdateProfile updates the mutable profile fields of the caller
func UpdateProfile(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedUpdateProfile").(*struct {
		Email          *string `json:"email"`
		Language       *string `json:"language"`
		ProfilePicture *string `json:"profilePicture"`
		Bio            *string `json:"bio"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db
	role, _ := c.Locals("role").(models.Role)

	if models.IsTeacherRole(role) {
		teacher, ok := c.Locals("teacher").(*models.Teacher)
		if !ok {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Teacher not found!", nil)
		}
		if reqData.Email != nil {
			teacher.Email = *reqData.Email
		}
		if reqData.Language != nil {
			teacher.Language = *reqData.Language
		}
		if reqData.Bio != nil {
			teacher.Bio = *reqData.Bio
		}
		if err := db.Save(teacher).Error; err != nil {
			log.Printf("Error updating teacher profile: %v", err)
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", fiber.Map{
			"id":       teacher.ID,
			"email":    teacher.Email,
			"language": teacher.Language,
			"bio":      teacher.Bio,
		})
	}

	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}
	if reqData.Email != nil {
		user.Email = *reqData.Email
	}
	if reqData.Language != nil {
		user.Language = *reqData.Language
	}
	if reqData.ProfilePicture != nil {
		user.ProfilePicture = *reqData.ProfilePicture
	}
	if err := db.Save(user).Error; err != nil {
		log.Printf("Error updating user profile: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile updated successfully!", fiber.Map{
		"id":             user.ID,
		"email":          user.Email,
		"language":       user.Language,
		"profilePicture": user.ProfilePicture,
	})
}

// UploadProfilePicture stores an image upload and sets it on the user profile
func UploadProfilePicture(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "User not found!", nil)
	}

	file, err := c.FormFile("picture")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Picture file is required!", nil)
	}

	fileName, err := utils.SaveUploadedFile(file)
	if err != nil {
		log.Printf("Error saving profile picture: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save picture!", nil)
	}

	user.ProfilePicture = utils.GetFileURL(fileName)
	if err := database.Database.Db.Save(user).Error; err != nil {
		log.Printf("Error updating profile picture: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update profile!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile picture updated!", fiber.Map{
		"profilePicture": user.ProfilePicture,
	})
}

// GetBadges lists the caller's earned badges, newest first
func GetBadges(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var badges []models.Badge
	if err := database.Database.Db.
		Where("user_id = ?", userId).
		Order("earned_on DESC").
		Find(&badges).Error; err != nil {
		log.Printf("Error fetching badges: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch badges!", nil)
	}

	db := database.Database.Db
	items := make([]fiber.Map, 0, len(badges))
	for _, b := range badges {
		var session course.Session
		db.First(&session, b.SessionID)

		var crs course.Course
		db.First(&crs, b.CourseID)

		items = append(items, fiber.Map{
			"id":           b.ID,
			"name":         b.Name,
			"earnedOn":     b.EarnedOn,
			"sessionId":    b.SessionID,
			"sessionTitle": session.Title,
			"courseId":     b.CourseID,
			"courseTitle":  crs.Title,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Badges fetched successfully!", fiber.Map{
		"count":  len(items),
		"badges": items,
	})
}

// GetCertificates lists the caller's certificates
func GetCertificates(c *fiber.Ctx) error {
	userId, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certificates []models.Certificate
	if err := database.Database.Db.
		Where("user_id = ?", userId).
		Order("issue_date DESC").
		Find(&certificates).Error; err != nil {
		log.Printf("Error fetching certificates: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully!", fiber.Map{
		"count":        len(certificates),
		"certificates": certificates,
	})
}

// firstUserByID loads an active user row
func firstUserByID(db *gorm.DB, id uint) (*models.User, error) {
	var user models.User
	if err := db.Where("id = ? AND is_deleted = ?", id, false).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
