package expert

// The catalog defines the stock experts for operations-research solving.
// They differ only by their template strings; adding an expert is adding
// data, never control flow.

const orRole = "You are an expert in the field of operations research and optimization. " +
	"You are proficient in linear programming and mixed-integer programming and in " +
	"translating real-world planning problems into mathematical models."

const pythonRole = "You are a Python programmer in the field of operations research and " +
	"optimization. Your proficiency in utilizing third-party libraries such as Gurobi is " +
	"essential, along with related libraries or tools like NumPy, SciPy, or PuLP."

// NewModelingExpert formulates a problem description as a mathematical
// program: decision variables, objective, constraints.
func NewModelingExpert(client Completer, provider, model string) (*Expert, error) {
	return New(client, Config{
		Name:            "modeling_expert",
		Description:     "formulates the problem as a mathematical program",
		Provider:        provider,
		Model:           model,
		RoleDescription: orRole,
		ForwardTask: "You are given a specific problem. Identify the decision variables, the " +
			"objective function, and all constraints, and state the resulting mathematical model.\n" +
			"Now the origin problem is as follow:\n{problem_description}\n" +
			"Give your formulation directly.",
		BackwardTask: "You previously formulated a mathematical model for a problem, and a " +
			"reviewer raised concerns. Revise the formulation accordingly.\n" +
			"The problem is as follow:\n{problem_description}\n" +
			"Your previous formulation:\n{previous_answer}\n" +
			"Reviewer feedback:\n{feedback}\n" +
			"Give your revised formulation directly.",
	})
}

// NewProgrammingExpert turns a formulation into runnable Python code against
// an off-the-shelf solver.
func NewProgrammingExpert(client Completer, provider, model string) (*Expert, error) {
	return New(client, Config{
		Name:            "programming_expert",
		Description:     "writes Python code that solves the formulated model",
		Provider:        provider,
		Model:           model,
		RoleDescription: pythonRole,
		ForwardTask: "You are given a specific problem and commentary from other experts. " +
			"You aim to develop an efficient Python program that addresses the given problem.\n" +
			"Now the origin problem is as follow:\n{problem_description}\n" +
			"Commentary from other experts:\n{comments}\n" +
			"Here is a starter code:\n{code_example}\n" +
			"Give your Python code directly.",
		BackwardTask: "You previously wrote Python code for an optimization problem, and a " +
			"reviewer raised concerns. Revise the code accordingly.\n" +
			"The problem is as follow:\n{problem_description}\n" +
			"Your previous code:\n{previous_answer}\n" +
			"Reviewer feedback:\n{feedback}\n" +
			"Give your revised Python code directly.",
	})
}

// NewCodeReviewExpert critiques generated code against the problem
// statement. Forward-only: it is the source of feedback, not a recipient.
func NewCodeReviewExpert(client Completer, provider, model string) (*Expert, error) {
	return New(client, Config{
		Name:            "code_review_expert",
		Description:     "reviews generated code against the problem statement",
		Provider:        provider,
		Model:           model,
		RoleDescription: pythonRole,
		ForwardTask: "You are given a specific problem and a Python program that is supposed " +
			"to solve it. Check whether the code faithfully implements the problem: variables, " +
			"objective, constraints, and solver usage. Point out concrete defects if any, or " +
			"state that the code looks correct.\n" +
			"Now the origin problem is as follow:\n{problem_description}\n" +
			"The code under review:\n{comments}\n" +
			"Give your review directly.",
	})
}
