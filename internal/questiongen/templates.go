package questiongen

import "fmt"

type template func(topic string) string

// tpl builds a template from a format string with a single %s for the topic.
func tpl(format string) template {
	return func(topic string) string { return fmt.Sprintf(format, topic) }
}

var choiceTitles = []template{
	tpl("Which statement about the basic concepts of %s is correct?"),
	tpl("In %s, which option is described most accurately?"),
	tpl("What is the core characteristic of %s?"),
	tpl("Which description of %s is wrong?"),
	tpl("What is the main application scenario of %s?"),
	tpl("What matters most when developing with %s?"),
	tpl("What is the main advantage of %s over traditional approaches?"),
	tpl("Which key point needs attention when using %s?"),
	tpl("How is %s implemented under the hood?"),
	tpl("What is considered best practice for %s?"),
}

var multipleTitles = []template{
	tpl("Which of the following are features of %s? (select all that apply)"),
	tpl("Which statements about %s are true? (select all that apply)"),
	tpl("Which of these are common challenges in %s projects? (select all that apply)"),
	tpl("Which factors affect the performance of %s? (select all that apply)"),
}

var optionSets = [][]string{
	{"the basic concepts and principles of", "the advanced features and extensions of", "the real-world use cases of", "performance tuning and best practices for"},
	{"the core components and architecture of", "configuration and parameters of", "integration and deployment of", "monitoring and maintenance of"},
	{"the basic operations and API of", "custom extensions built on", "testing and debugging methods for", "security and stability guarantees of"},
	{"the design patterns behind", "the toolchain and environment for", "the community and ecosystem around", "the future direction of"},
}

var fillTitles = []template{
	tpl("In %s, ____ is an important concept."),
	tpl("When developing with %s, ____ is indispensable."),
	tpl("The core function of %s is ____."),
	tpl("____ is a basic building block of %s."),
	tpl("The ____ mechanism of %s keeps the system stable."),
	tpl("In the %s architecture, ____ handles the core logic."),
	tpl("____ is the key factor in %s performance tuning."),
	tpl("In %s, ____ is used for data persistence."),
}

var fillAnswers = []string{
	"core concept",
	"basic function",
	"key component",
	"validation",
	"fault tolerance",
	"extension interface",
	"caching strategy",
	"data storage",
	"scheduling",
}

var shortTitles = []template{
	tpl("Briefly describe the main characteristics of %s."),
	tpl("Explain the core concepts of %s."),
	tpl("Describe typical application scenarios of %s."),
	tpl("What problems does %s solve, and how?"),
	tpl("Summarize the strengths and weaknesses of %s."),
	tpl("Outline how %s is structured internally."),
}

var shortAnswers = []template{
	tpl("%s rests on a few core concepts that define how it behaves, and it is used wherever those concepts simplify design, testing and maintenance."),
	tpl("The key characteristics of %s are a clear structure, good extensibility and predictable performance, which make it suitable for production systems."),
	tpl("%s addresses complexity by separating responsibilities, offering reusable building blocks and well defined interfaces between them."),
}

var codingTitles = []template{
	tpl("Implement a small %s utility function."),
	tpl("Write a program that applies %s to process a list of numbers."),
	tpl("Solve a simple data-processing task using %s."),
	tpl("Write a function that demonstrates %s on an array."),
}

type codingTask struct {
	requirements string
	input        string
	output       string
	answer       string
}

var codingTasks = []codingTask{
	{
		requirements: "Write a function that returns the sum of all numbers in an array.",
		input:        "[1, 2, 3, 4]",
		output:       "10",
		answer:       "function sum(nums) {\n  let total = 0;\n  for (const n of nums) { total += n; }\n  return total;\n}",
	},
	{
		requirements: "Write a function that returns the largest number in an array.",
		input:        "[3, 9, 2]",
		output:       "9",
		answer:       "function max(nums) {\n  let best = nums[0];\n  for (const n of nums) { if (n > best) { best = n; } }\n  return best;\n}",
	},
	{
		requirements: "Write a function that reverses a string.",
		input:        "\"hello\"",
		output:       "\"olleh\"",
		answer:       "function reverse(s) {\n  return s.split('').reverse().join('');\n}",
	},
	{
		requirements: "Write a function that keeps only the even numbers of an array.",
		input:        "[1, 2, 3, 4]",
		output:       "[2, 4]",
		answer:       "function evens(nums) {\n  return nums.filter(n => n % 2 === 0);\n}",
	},
}

var essayTitles = []template{
	tpl("Discuss the role of %s in modern software development."),
	tpl("Analyze the trade-offs involved in adopting %s."),
	tpl("Evaluate how %s has changed engineering practice."),
	tpl("Argue for or against using %s in large projects."),
}

var essayPoints = []template{
	tpl("core principles of %s"),
	tpl("practical use cases of %s"),
	tpl("limitations of %s"),
	tpl("comparison of %s with alternatives"),
	tpl("future development of %s"),
	tpl("impact of %s on team workflow"),
}
