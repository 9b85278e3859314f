package exam

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// SQLStore persists the exam catalog. Foreign-key targets are checked here
// rather than relying on constraint errors, so callers get ErrInvalid with a
// usable message instead of a driver-specific failure.
type SQLStore struct {
	db     *sql.DB
	driver string // "sqlite" or "postgres"
}

func NewSQLStore(db *sql.DB, driver string) *SQLStore {
	return &SQLStore{db: db, driver: driver}
}

func (s *SQLStore) exists(ctx context.Context, table string, id int64) (bool, error) {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE id=$1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (s *SQLStore) requireRow(ctx context.Context, table, what string, id int64) error {
	ok, err := s.exists(ctx, table, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s %d does not exist", ErrInvalid, what, id)
	}
	return nil
}

// ---------- Doctors ----------

func (s *SQLStore) CreateDoctor(ctx context.Context, d Doctor) (int64, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM doctors WHERE email=$1`, d.Email).Scan(&exists)
	if err == nil {
		return 0, fmt.Errorf("%w: email already registered", ErrConflict)
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return 0, err
	}
	return s.insertReturningID(ctx,
		`INSERT INTO doctors (name,email,password_hash) VALUES ($1,$2,$3)`,
		d.Name, d.Email, d.PasswordHash)
}

func (s *SQLStore) GetDoctor(ctx context.Context, id int64) (Doctor, error) {
	var d Doctor
	err := s.db.QueryRowContext(ctx,
		`SELECT id,name,email,password_hash FROM doctors WHERE id=$1`, id).
		Scan(&d.ID, &d.Name, &d.Email, &d.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return Doctor{}, fmt.Errorf("%w: doctor %d", ErrNotFound, id)
	}
	return d, err
}

func (s *SQLStore) GetDoctorByEmail(ctx context.Context, email string) (Doctor, error) {
	var d Doctor
	err := s.db.QueryRowContext(ctx,
		`SELECT id,name,email,password_hash FROM doctors WHERE email=$1`, email).
		Scan(&d.ID, &d.Name, &d.Email, &d.PasswordHash)
	if errors.Is(err, sql.ErrNoRows) {
		return Doctor{}, fmt.Errorf("%w: doctor %s", ErrNotFound, email)
	}
	return d, err
}

func (s *SQLStore) UpdateDoctor(ctx context.Context, d Doctor) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE doctors SET name=$1, email=$2, password_hash=$3 WHERE id=$4`,
		d.Name, d.Email, d.PasswordHash, d.ID)
	if err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "unique") {
			return fmt.Errorf("%w: email already registered", ErrConflict)
		}
		return err
	}
	return rowsAffected(res, "doctor", d.ID)
}

// ---------- Materials ----------

func (s *SQLStore) CreateMaterial(ctx context.Context, m Material) (int64, error) {
	if err := s.requireRow(ctx, "doctors", "doctor", m.DoctorID); err != nil {
		return 0, err
	}
	return s.insertReturningID(ctx,
		`INSERT INTO materials (material_name,material_code,level,department,term,doctor_id)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		m.Name, m.Code, m.Level, m.Department, m.Term, m.DoctorID)
}

func (s *SQLStore) GetMaterial(ctx context.Context, id int64) (Material, error) {
	var m Material
	err := s.db.QueryRowContext(ctx,
		`SELECT id,material_name,material_code,level,department,term,doctor_id
		   FROM materials WHERE id=$1`, id).
		Scan(&m.ID, &m.Name, &m.Code, &m.Level, &m.Department, &m.Term, &m.DoctorID)
	if errors.Is(err, sql.ErrNoRows) {
		return Material{}, fmt.Errorf("%w: material %d", ErrNotFound, id)
	}
	return m, err
}

func (s *SQLStore) ListMaterials(ctx context.Context) ([]Material, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,material_name,material_code,level,department,term,doctor_id
		   FROM materials ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Material{}
	for rows.Next() {
		var m Material
		if err := rows.Scan(&m.ID, &m.Name, &m.Code, &m.Level, &m.Department, &m.Term, &m.DoctorID); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateMaterial(ctx context.Context, m Material) error {
	if err := s.requireRow(ctx, "doctors", "doctor", m.DoctorID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE materials SET material_name=$1, material_code=$2, level=$3, department=$4, term=$5, doctor_id=$6
		  WHERE id=$7`,
		m.Name, m.Code, m.Level, m.Department, m.Term, m.DoctorID, m.ID)
	if err != nil {
		return err
	}
	return rowsAffected(res, "material", m.ID)
}

func (s *SQLStore) DeleteMaterial(ctx context.Context, id int64) error {
	for _, dep := range []struct{ table, column, what string }{
		{"topics", "material_id", "topics"},
		{"exams", "material_id", "exams"},
	} {
		if err := s.rejectDependents(ctx, dep.table, dep.column, id, "material", dep.what); err != nil {
			return err
		}
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM materials WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res, "material", id)
}

// rejectDependents blocks deletes that would orphan referencing rows, so
// both drivers fail the same way without relying on FK enforcement.
func (s *SQLStore) rejectDependents(ctx context.Context, table, column string, id int64, owner, what string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM `+table+` WHERE `+column+`=$1 LIMIT 1`, id).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: %s %d still has %s", ErrConflict, owner, id, what)
}

// ---------- Topics ----------

func (s *SQLStore) CreateTopic(ctx context.Context, t Topic) (int64, error) {
	if err := s.requireRow(ctx, "materials", "material", t.MaterialID); err != nil {
		return 0, err
	}
	return s.insertReturningID(ctx,
		`INSERT INTO topics (topic_name,material_id) VALUES ($1,$2)`, t.Name, t.MaterialID)
}

func (s *SQLStore) GetTopic(ctx context.Context, id int64) (Topic, error) {
	var t Topic
	err := s.db.QueryRowContext(ctx,
		`SELECT id,topic_name,material_id FROM topics WHERE id=$1`, id).
		Scan(&t.ID, &t.Name, &t.MaterialID)
	if errors.Is(err, sql.ErrNoRows) {
		return Topic{}, fmt.Errorf("%w: topic %d", ErrNotFound, id)
	}
	return t, err
}

func (s *SQLStore) ListTopics(ctx context.Context) ([]Topic, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id,topic_name,material_id FROM topics ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Topic{}
	for rows.Next() {
		var t Topic
		if err := rows.Scan(&t.ID, &t.Name, &t.MaterialID); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateTopic(ctx context.Context, t Topic) error {
	if err := s.requireRow(ctx, "materials", "material", t.MaterialID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE topics SET topic_name=$1, material_id=$2 WHERE id=$3`, t.Name, t.MaterialID, t.ID)
	if err != nil {
		return err
	}
	return rowsAffected(res, "topic", t.ID)
}

func (s *SQLStore) DeleteTopic(ctx context.Context, id int64) error {
	if err := s.rejectDependents(ctx, "groups", "topic_id", id, "topic", "groups"); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM topics WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res, "topic", id)
}

// ---------- Groups ----------

func (s *SQLStore) CreateGroup(ctx context.Context, g Group) (int64, error) {
	if err := s.requireRow(ctx, "topics", "topic", g.TopicID); err != nil {
		return 0, err
	}
	return s.insertReturningID(ctx,
		`INSERT INTO groups (topic_id,group_name,common_question_header,has_common_header,total_problems,main_degree)
		 VALUES ($1,$2,$3,$4,$5,$6)`,
		g.TopicID, g.Name, g.CommonQuestionHeader, boolToInt(g.HasCommonHeader), g.TotalProblems, g.MainDegree)
}

func (s *SQLStore) GetGroup(ctx context.Context, id int64) (Group, error) {
	var g Group
	var common int
	err := s.db.QueryRowContext(ctx,
		`SELECT id,topic_id,group_name,common_question_header,has_common_header,total_problems,main_degree
		   FROM groups WHERE id=$1`, id).
		Scan(&g.ID, &g.TopicID, &g.Name, &g.CommonQuestionHeader, &common, &g.TotalProblems, &g.MainDegree)
	if errors.Is(err, sql.ErrNoRows) {
		return Group{}, fmt.Errorf("%w: group %d", ErrNotFound, id)
	}
	if err != nil {
		return Group{}, err
	}
	g.HasCommonHeader = common != 0
	return g, nil
}

func (s *SQLStore) ListGroups(ctx context.Context) ([]Group, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,topic_id,group_name,common_question_header,has_common_header,total_problems,main_degree
		   FROM groups ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Group{}
	for rows.Next() {
		var g Group
		var common int
		if err := rows.Scan(&g.ID, &g.TopicID, &g.Name, &g.CommonQuestionHeader, &common, &g.TotalProblems, &g.MainDegree); err != nil {
			return nil, err
		}
		g.HasCommonHeader = common != 0
		out = append(out, g)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateGroup(ctx context.Context, g Group) error {
	if err := s.requireRow(ctx, "topics", "topic", g.TopicID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE groups SET topic_id=$1, group_name=$2, common_question_header=$3, has_common_header=$4,
		        total_problems=$5, main_degree=$6 WHERE id=$7`,
		g.TopicID, g.Name, g.CommonQuestionHeader, boolToInt(g.HasCommonHeader), g.TotalProblems, g.MainDegree, g.ID)
	if err != nil {
		return err
	}
	return rowsAffected(res, "group", g.ID)
}

func (s *SQLStore) DeleteGroup(ctx context.Context, id int64) error {
	if err := s.rejectDependents(ctx, "problems", "group_id", id, "group", "problems"); err != nil {
		return err
	}
	if err := s.rejectDependents(ctx, "exam_units", "group_id", id, "group", "exam units"); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM groups WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res, "group", id)
}

// ---------- Problems ----------

func (s *SQLStore) CreateProblem(ctx context.Context, p Problem) (int64, error) {
	if err := s.requireRow(ctx, "groups", "group", p.GroupID); err != nil {
		return 0, err
	}
	if p.ChoicesNumber > 0 && (p.RightAnswer < 1 || p.RightAnswer > p.ChoicesNumber) {
		return 0, fmt.Errorf("%w: right answer %d out of range 1..%d", ErrInvalid, p.RightAnswer, p.ChoicesNumber)
	}
	return s.insertReturningID(ctx,
		`INSERT INTO problems (group_id,problem_name,problem_header,image_path,choices_number,right_answer,shuffle,main_degree)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		p.GroupID, p.Name, p.Header, p.ImagePath, p.ChoicesNumber, p.RightAnswer, boolToInt(p.Shuffle), p.MainDegree)
}

func (s *SQLStore) GetProblem(ctx context.Context, id int64) (Problem, error) {
	var p Problem
	var shuffle int
	err := s.db.QueryRowContext(ctx,
		`SELECT id,group_id,problem_name,problem_header,image_path,choices_number,right_answer,shuffle,main_degree
		   FROM problems WHERE id=$1`, id).
		Scan(&p.ID, &p.GroupID, &p.Name, &p.Header, &p.ImagePath, &p.ChoicesNumber, &p.RightAnswer, &shuffle, &p.MainDegree)
	if errors.Is(err, sql.ErrNoRows) {
		return Problem{}, fmt.Errorf("%w: problem %d", ErrNotFound, id)
	}
	if err != nil {
		return Problem{}, err
	}
	p.Shuffle = shuffle != 0
	choices, err := s.listChoices(ctx, p.ID)
	if err != nil {
		return Problem{}, err
	}
	p.Choices = choices
	return p, nil
}

func (s *SQLStore) ListProblems(ctx context.Context, groupID int64) ([]Problem, error) {
	q := `SELECT id,group_id,problem_name,problem_header,image_path,choices_number,right_answer,shuffle,main_degree
	        FROM problems`
	args := []any{}
	if groupID > 0 {
		q += ` WHERE group_id=$1`
		args = append(args, groupID)
	}
	q += ` ORDER BY id`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Problem{}
	for rows.Next() {
		var p Problem
		var shuffle int
		if err := rows.Scan(&p.ID, &p.GroupID, &p.Name, &p.Header, &p.ImagePath, &p.ChoicesNumber, &p.RightAnswer, &shuffle, &p.MainDegree); err != nil {
			return nil, err
		}
		p.Shuffle = shuffle != 0
		out = append(out, p)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateProblem(ctx context.Context, p Problem) error {
	if err := s.requireRow(ctx, "groups", "group", p.GroupID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE problems SET group_id=$1, problem_name=$2, problem_header=$3, image_path=$4,
		        choices_number=$5, right_answer=$6, shuffle=$7, main_degree=$8 WHERE id=$9`,
		p.GroupID, p.Name, p.Header, p.ImagePath, p.ChoicesNumber, p.RightAnswer, boolToInt(p.Shuffle), p.MainDegree, p.ID)
	if err != nil {
		return err
	}
	return rowsAffected(res, "problem", p.ID)
}

func (s *SQLStore) DeleteProblem(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM problem_choices WHERE problem_id=$1`, id); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM problems WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res, "problem", id)
}

// ---------- Problem choices ----------

func (s *SQLStore) CreateChoice(ctx context.Context, c ProblemChoice) (int64, error) {
	if err := s.requireRow(ctx, "problems", "problem", c.ProblemID); err != nil {
		return 0, err
	}
	if c.UnitOrder < 1 {
		return 0, fmt.Errorf("%w: unit order must be >= 1", ErrInvalid)
	}
	return s.insertReturningID(ctx,
		`INSERT INTO problem_choices (problem_id,choice_text,image_path,unit_order) VALUES ($1,$2,$3,$4)`,
		c.ProblemID, c.Text, c.ImagePath, c.UnitOrder)
}

func (s *SQLStore) GetChoice(ctx context.Context, id int64) (ProblemChoice, error) {
	var c ProblemChoice
	err := s.db.QueryRowContext(ctx,
		`SELECT id,problem_id,choice_text,image_path,unit_order FROM problem_choices WHERE id=$1`, id).
		Scan(&c.ID, &c.ProblemID, &c.Text, &c.ImagePath, &c.UnitOrder)
	if errors.Is(err, sql.ErrNoRows) {
		return ProblemChoice{}, fmt.Errorf("%w: choice %d", ErrNotFound, id)
	}
	return c, err
}

func (s *SQLStore) listChoices(ctx context.Context, problemID int64) ([]ProblemChoice, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,problem_id,choice_text,image_path,unit_order
		   FROM problem_choices WHERE problem_id=$1 ORDER BY unit_order`, problemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ProblemChoice{}
	for rows.Next() {
		var c ProblemChoice
		if err := rows.Scan(&c.ID, &c.ProblemID, &c.Text, &c.ImagePath, &c.UnitOrder); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) ListChoices(ctx context.Context, problemID int64) ([]ProblemChoice, error) {
	if problemID > 0 {
		return s.listChoices(ctx, problemID)
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,problem_id,choice_text,image_path,unit_order FROM problem_choices ORDER BY problem_id, unit_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ProblemChoice{}
	for rows.Next() {
		var c ProblemChoice
		if err := rows.Scan(&c.ID, &c.ProblemID, &c.Text, &c.ImagePath, &c.UnitOrder); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateChoice(ctx context.Context, c ProblemChoice) error {
	if err := s.requireRow(ctx, "problems", "problem", c.ProblemID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE problem_choices SET problem_id=$1, choice_text=$2, image_path=$3, unit_order=$4 WHERE id=$5`,
		c.ProblemID, c.Text, c.ImagePath, c.UnitOrder, c.ID)
	if err != nil {
		return err
	}
	return rowsAffected(res, "choice", c.ID)
}

func (s *SQLStore) DeleteChoice(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM problem_choices WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res, "choice", id)
}

// ---------- helpers ----------

// insertReturningID works around LastInsertId being unsupported by the pgx
// stdlib driver: postgres paths go through RETURNING, sqlite through
// LastInsertId.
func (s *SQLStore) insertReturningID(ctx context.Context, query string, args ...any) (int64, error) {
	if s.driver == "postgres" {
		var id int64
		err := s.db.QueryRowContext(ctx, query+` RETURNING id`, args...).Scan(&id)
		return id, err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func rowsAffected(res sql.Result, what string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %s %d", ErrNotFound, what, id)
	}
	return nil
}
