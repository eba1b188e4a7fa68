package constants

import "strings"

//============== РОЛИ ==============

// Роли пользователей. Совпадают со значениями в колонке users.role.
const (
	RoleAdmin   = "ADMIN"
	RoleManager = "MANAGER"
)

//============== СТАТУСЫ ЗАЯВОК ==============

// Статусы заявок. Хранятся в нижнем регистре.
const (
	StatusNew      = "new"
	StatusInWork   = "in_work"
	StatusAgree    = "agree"
	StatusDisagree = "disagree"
	StatusDubbing  = "dubbing"
)

var OrderStatuses = []string{
	StatusNew,
	StatusInWork,
	StatusAgree,
	StatusDisagree,
	StatusDubbing,
}

//============== КУРСЫ ==============

// Коды курсов (верхний регистр).
var Courses = []string{"FS", "QACX", "JCX", "JSCX", "FE", "PCX"}

// Форматы курса (нижний регистр).
var CourseFormats = []string{"static", "online"}

// Типы курса (нижний регистр).
var CourseTypes = []string{"pro", "minimal", "premium", "incubator", "vip"}

// IsValidStatus проверяет статус после приведения к нижнему регистру.
func IsValidStatus(status string) bool {
	return contains(OrderStatuses, strings.ToLower(status))
}

func IsValidCourse(course string) bool {
	return contains(Courses, strings.ToUpper(course))
}

func IsValidCourseFormat(format string) bool {
	return contains(CourseFormats, strings.ToLower(format))
}

func IsValidCourseType(courseType string) bool {
	return contains(CourseTypes, strings.ToLower(courseType))
}

func contains(list []string, value string) bool {
	for _, item := range list {
		if item == value {
			return true
		}
	}
	return false
}
