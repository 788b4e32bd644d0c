package userpkg

type User struct {
	ID    string
	Email string
	Name  string
}

type CreateUserInput struct {
	Email string
	Name  string
}

type UserRepository struct{}

func (r *UserRepository) FindById(id string) *User {
	return nil
}

func (r *UserRepository) FindByEmail(email string) *User {
	return nil
}

func (r *UserRepository) Create(input CreateUserInput) *User {
	return nil
}

func (r *UserRepository) Delete(id string) error {
	return nil
}

func ValidateEmail(email string) bool {
	return len(email) > 0
}

func ValidateName(name string) bool {
	return len(name) > 0
}

func ValidateCreateUserInput(input CreateUserInput) bool {
	return ValidateName(input.Name) && ValidateEmail(input.Email)
}

type UserService struct {
	repo *UserRepository
}

func (s *UserService) GetUser(id string) *User {
	return s.repo.FindById(id)
}

func (s *UserService) CreateUser(input CreateUserInput) *User {
	if !ValidateCreateUserInput(input) {
		return nil
	}
	return s.repo.Create(input)
}

func (s *UserService) DeleteUser(id string) error {
	return s.repo.Delete(id)
}

func HandleCreateUser(input CreateUserInput) *User {
	svc := &UserService{}
	return svc.CreateUser(input)
}

func HandleGetUser(id string) *User {
	svc := &UserService{}
	return svc.GetUser(id)
}

func ProcessUserRegistration(input CreateUserInput) *User {
	return HandleCreateUser(input)
}
