package utils

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"lms/database"
	"lms/models"
	courseModels "lms/models/course"
)

func logScheduler(message string) {
	log.Printf("[CERT-SCHEDULER %s] %s", time.Now().Format(time.RFC3339), message)
}

// issueCertificates assigns certificate numbers to completed enrollments
// that have none yet and notifies the learner
func issueCertificates() {
	db := database.Database.Db

	var enrollments []courseModels.Enrollment
	if err := db.Where("is_completed = ? AND certificate = ?", true, "").Find(&enrollments).Error; err != nil {
		logScheduler("Error fetching completed enrollments: " + err.Error())
		return
	}

	for _, enrollment := range enrollments {
		number := GenerateCertificateNumber()
		if err := db.Model(&enrollment).Update("certificate", number).Error; err != nil {
			logScheduler("Error issuing certificate: " + err.Error())
			continue
		}

		logScheduler("Issued certificate " + number)

		// Dangling course/user references are tolerated, the certificate
		// is still recorded
		user, err := database.FindByID[models.User](db, enrollment.UserID)
		if err != nil || user == nil {
			logScheduler("Warning: enrollment references missing or deleted user")
			continue
		}
		course, err := database.FindByID[courseModels.Course](db, enrollment.CourseID)
		if err != nil || course == nil {
			logScheduler("Warning: enrollment references missing or deleted course")
			continue
		}

		go func(u models.User, courseName, number string) {
			body := CertificateEmail(u.FirstName, courseName, number)
			if err := SendEmail([]string{u.Email}, "Course completed!", body); err != nil {
				logScheduler("Error sending certificate email: " + err.Error())
			}
		}(*user, course.Name, number)
	}
}

// StartCertificateScheduler runs the certificate sweep every hour
func StartCertificateScheduler() *cron.Cron {
	c := cron.New()
	if _, err := c.AddFunc("@hourly", issueCertificates); err != nil {
		log.Fatalf("Failed to schedule certificate sweep: %v", err)
	}
	c.Start()
	logScheduler("Certificate scheduler started")
	return c
}
