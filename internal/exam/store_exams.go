package exam

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ---------- Exams ----------

func (s *SQLStore) CreateExam(ctx context.Context, e Exam) (int64, error) {
	if err := s.requireRow(ctx, "materials", "material", e.MaterialID); err != nil {
		return 0, err
	}
	if e.DurationMin <= 0 {
		return 0, fmt.Errorf("%w: exam duration must be positive", ErrInvalid)
	}
	return s.insertReturningID(ctx,
		`INSERT INTO exams (material_id,exam_name,main_degree,total_problems,shuffle,duration_min,exam_date,university_name,college_name)
		 VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)`,
		e.MaterialID, e.Name, e.MainDegree, e.TotalProblems, boolToInt(e.Shuffle),
		e.DurationMin, e.Date.Format(dateLayout), e.UniversityName, e.CollegeName)
}

func (s *SQLStore) scanExam(row *sql.Row) (Exam, error) {
	var e Exam
	var shuffle int
	var date string
	err := row.Scan(&e.ID, &e.MaterialID, &e.Name, &e.MainDegree, &e.TotalProblems,
		&shuffle, &e.DurationMin, &date, &e.UniversityName, &e.CollegeName)
	if err != nil {
		return Exam{}, err
	}
	e.Shuffle = shuffle != 0
	if e.Date, err = time.Parse(dateLayout, date); err != nil {
		return Exam{}, err
	}
	return e, nil
}

func (s *SQLStore) GetExam(ctx context.Context, id int64) (Exam, error) {
	e, err := s.scanExam(s.db.QueryRowContext(ctx,
		`SELECT id,material_id,exam_name,main_degree,total_problems,shuffle,duration_min,exam_date,university_name,college_name
		   FROM exams WHERE id=$1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return Exam{}, fmt.Errorf("%w: exam %d", ErrNotFound, id)
	}
	if err != nil {
		return Exam{}, err
	}
	m, err := s.GetMaterial(ctx, e.MaterialID)
	if err == nil {
		e.Material = &m
	} else if !errors.Is(err, ErrNotFound) {
		return Exam{}, err
	}
	return e, nil
}

func (s *SQLStore) ListExams(ctx context.Context) ([]Exam, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id,material_id,exam_name,main_degree,total_problems,shuffle,duration_min,exam_date,university_name,college_name
		   FROM exams ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Exam{}
	for rows.Next() {
		var e Exam
		var shuffle int
		var date string
		if err := rows.Scan(&e.ID, &e.MaterialID, &e.Name, &e.MainDegree, &e.TotalProblems,
			&shuffle, &e.DurationMin, &date, &e.UniversityName, &e.CollegeName); err != nil {
			return nil, err
		}
		e.Shuffle = shuffle != 0
		if e.Date, err = time.Parse(dateLayout, date); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateExam(ctx context.Context, e Exam) error {
	if err := s.requireRow(ctx, "materials", "material", e.MaterialID); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE exams SET material_id=$1, exam_name=$2, main_degree=$3, total_problems=$4, shuffle=$5,
		        duration_min=$6, exam_date=$7, university_name=$8, college_name=$9 WHERE id=$10`,
		e.MaterialID, e.Name, e.MainDegree, e.TotalProblems, boolToInt(e.Shuffle),
		e.DurationMin, e.Date.Format(dateLayout), e.UniversityName, e.CollegeName, e.ID)
	if err != nil {
		return err
	}
	return rowsAffected(res, "exam", e.ID)
}

func (s *SQLStore) DeleteExam(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM exam_units WHERE exam_id=$1`, id); err != nil {
		return err
	}
	res, err := s.db.ExecContext(ctx, `DELETE FROM exams WHERE id=$1`, id)
	if err != nil {
		return err
	}
	return rowsAffected(res, "exam", id)
}

// ---------- Exam units ----------

func (s *SQLStore) CreateExamUnit(ctx context.Context, u ExamUnit) (int64, error) {
	if err := s.requireRow(ctx, "exams", "exam", u.ExamID); err != nil {
		return 0, err
	}
	if err := s.requireRow(ctx, "groups", "group", u.GroupID); err != nil {
		return 0, err
	}
	if u.AllProblems < u.TotalProblems {
		return 0, fmt.Errorf("%w: all problems cannot be less than total problems", ErrInvalid)
	}
	query := `INSERT INTO exam_units (exam_id,group_id,main_degree,total_problems,shuffle,all_problems)
	          VALUES ($1,$2,$3,$4,$5,$6)`
	args := []any{u.ExamID, u.GroupID, u.MainDegree, u.TotalProblems, boolToInt(u.Shuffle), u.AllProblems}
	if s.driver == "postgres" {
		var unitOrder int64
		err := s.db.QueryRowContext(ctx, query+` RETURNING unit_order`, args...).Scan(&unitOrder)
		return unitOrder, err
	}
	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLStore) GetExamUnit(ctx context.Context, unitOrder int64) (ExamUnit, error) {
	var u ExamUnit
	var shuffle int
	err := s.db.QueryRowContext(ctx,
		`SELECT unit_order,exam_id,group_id,main_degree,total_problems,shuffle,all_problems
		   FROM exam_units WHERE unit_order=$1`, unitOrder).
		Scan(&u.UnitOrder, &u.ExamID, &u.GroupID, &u.MainDegree, &u.TotalProblems, &shuffle, &u.AllProblems)
	if errors.Is(err, sql.ErrNoRows) {
		return ExamUnit{}, fmt.Errorf("%w: exam unit %d", ErrNotFound, unitOrder)
	}
	if err != nil {
		return ExamUnit{}, err
	}
	u.Shuffle = shuffle != 0
	return u, nil
}

func (s *SQLStore) ListExamUnits(ctx context.Context, examID int64) ([]ExamUnit, error) {
	q := `SELECT unit_order,exam_id,group_id,main_degree,total_problems,shuffle,all_problems FROM exam_units`
	args := []any{}
	if examID > 0 {
		q += ` WHERE exam_id=$1`
		args = append(args, examID)
	}
	q += ` ORDER BY unit_order`
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []ExamUnit{}
	for rows.Next() {
		var u ExamUnit
		var shuffle int
		if err := rows.Scan(&u.UnitOrder, &u.ExamID, &u.GroupID, &u.MainDegree, &u.TotalProblems, &shuffle, &u.AllProblems); err != nil {
			return nil, err
		}
		u.Shuffle = shuffle != 0
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *SQLStore) UpdateExamUnit(ctx context.Context, u ExamUnit) error {
	if err := s.requireRow(ctx, "exams", "exam", u.ExamID); err != nil {
		return err
	}
	if err := s.requireRow(ctx, "groups", "group", u.GroupID); err != nil {
		return err
	}
	if u.AllProblems < u.TotalProblems {
		return fmt.Errorf("%w: all problems cannot be less than total problems", ErrInvalid)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE exam_units SET exam_id=$1, group_id=$2, main_degree=$3, total_problems=$4, shuffle=$5, all_problems=$6
		  WHERE unit_order=$7`,
		u.ExamID, u.GroupID, u.MainDegree, u.TotalProblems, boolToInt(u.Shuffle), u.AllProblems, u.UnitOrder)
	if err != nil {
		return err
	}
	return rowsAffected(res, "exam unit", u.UnitOrder)
}

func (s *SQLStore) DeleteExamUnit(ctx context.Context, unitOrder int64) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM exam_units WHERE unit_order=$1`, unitOrder)
	if err != nil {
		return err
	}
	return rowsAffected(res, "exam unit", unitOrder)
}

// LoadExamUnits materializes the full tree used by document generation: each
// unit carries its exam (with material) and its group with problems and
// choices in stored order.
func (s *SQLStore) LoadExamUnits(ctx context.Context, examID int64) ([]ExamUnit, error) {
	units, err := s.ListExamUnits(ctx, examID)
	if err != nil {
		return nil, err
	}
	if len(units) == 0 {
		return units, nil
	}

	e, err := s.GetExam(ctx, examID)
	if err != nil {
		return nil, err
	}

	groups := map[int64]*Group{}
	for i := range units {
		units[i].Exam = &e
		g, ok := groups[units[i].GroupID]
		if !ok {
			loaded, err := s.GetGroup(ctx, units[i].GroupID)
			if err != nil {
				return nil, err
			}
			problems, err := s.ListProblems(ctx, loaded.ID)
			if err != nil {
				return nil, err
			}
			for j := range problems {
				choices, err := s.listChoices(ctx, problems[j].ID)
				if err != nil {
					return nil, err
				}
				problems[j].Choices = choices
			}
			loaded.Problems = problems
			g = &loaded
			groups[loaded.ID] = g
		}
		units[i].Group = g
	}
	return units, nil
}
