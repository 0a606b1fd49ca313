package models

// ProfileBase holds the fields shared by every rider profile
// regardless of role.
type ProfileBase struct {
	Name    string `json:"name" bson:"name"`
	Email   string `json:"email" bson:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" bson:"phone"`
	Address string `json:"address" bson:"address"`
	Bio     string `json:"bio" bson:"bio"`
}

type StudentProfile struct {
	ProfileBase `bson:",inline"`
	Major       string `json:"major" bson:"major"`
	GradYear    string `json:"gradYear" bson:"grad_year"`
	CampusID    string `json:"campusId" bson:"campus_id"`
}

type AdminProfile struct {
	ProfileBase `bson:",inline"`
	Department  string `json:"department" bson:"department"`
	Title       string `json:"title" bson:"title"`
	EmployeeID  string `json:"employeeId" bson:"employee_id"`
}

// Profile is a tagged union over the two role-specific shapes. Exactly
// one of Student/Admin is set, matching Role.
type Profile struct {
	Role    UserRole        `json:"role"`
	Student *StudentProfile `json:"student,omitempty"`
	Admin   *AdminProfile   `json:"admin,omitempty"`
}

func NewStudentProfile(name, email string) *Profile {
	return &Profile{
		Role:    UserRoleRider,
		Student: &StudentProfile{ProfileBase: ProfileBase{Name: name, Email: email}},
	}
}

func NewAdminProfile(name, email string) *Profile {
	return &Profile{
		Role:  UserRoleAdmin,
		Admin: &AdminProfile{ProfileBase: ProfileBase{Name: name, Email: email}},
	}
}

// Base returns the shared fields of whichever variant is set.
func (p *Profile) Base() *ProfileBase {
	switch {
	case p.Student != nil:
		return &p.Student.ProfileBase
	case p.Admin != nil:
		return &p.Admin.ProfileBase
	default:
		return nil
	}
}
