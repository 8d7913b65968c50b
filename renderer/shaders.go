package renderer

// Fragment shaders for the post-process chain, embedded so the binary has no
// runtime asset dependencies. Both use raylib's default vertex shader and
// its fragTexCoord/fragColor/texture0 conventions.
//
// The luma weights and the blur weighting scheme are mirrored by the postfx
// package; change one and the CPU reference drifts from the GPU output.

// bloomShaderFS keeps pixels whose perceptual luminance exceeds a threshold
// and blacks out the rest. The gate is a hard cutoff, not a soft knee.
const bloomShaderFS = `#version 330

in vec2 fragTexCoord;
in vec4 fragColor;

uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform float threshold;

out vec4 finalColor;

void main()
{
    vec4 color = texture(texture0, fragTexCoord);
    float luma = dot(color.rgb, vec3(0.2125, 0.7154, 0.0721));
    float gate = sign(max(0.0, luma - threshold));
    finalColor = vec4(color.rgb * gate, 1.0);
}
`

// blurShaderFS is one axis of a separable Gaussian blur using the
// incremental weight recurrence: g.x carries the weight of the current tap,
// and g.xy *= g.yz advances it to the next integer distance. Dividing by
// the accumulated sum renormalizes for edge clamping. The horizontal
// uniform is a float because raylib-go only passes float uniforms.
const blurShaderFS = `#version 330

in vec2 fragTexCoord;
in vec4 fragColor;

uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec2 stepSize;
uniform float horizontal;
uniform float sigma;
uniform float support;

out vec4 finalColor;

void main()
{
    vec2 dir = horizontal > 0.5 ? vec2(1.0, 0.0) : vec2(0.0, 1.0);

    vec3 g;
    g.x = 1.0 / (sqrt(2.0 * 3.14159265) * sigma);
    g.y = exp(-0.5 / (sigma * sigma));
    g.z = g.y * g.y;

    vec4 avg = texture(texture0, fragTexCoord) * g.x;
    float sum = g.x;
    g.xy *= g.yz;

    int taps = int(support);
    for (int i = 1; i <= taps; i++) {
        vec2 off = float(i) * stepSize * dir;
        avg += texture(texture0, fragTexCoord - off) * g.x;
        avg += texture(texture0, fragTexCoord + off) * g.x;
        sum += 2.0 * g.x;
        g.xy *= g.yz;
    }

    finalColor = (avg / sum) * fragColor;
}
`
